package entity

type ProductCategory string

const (
	CategorySambar     ProductCategory = "sambar"
	CategoryRasam      ProductCategory = "rasam"
	CategoryCurry      ProductCategory = "curry"
	CategorySpeciality ProductCategory = "speciality"
)

func ValidProductCategory(c string) bool {
	switch ProductCategory(c) {
	case CategorySambar, CategoryRasam, CategoryCurry, CategorySpeciality:
		return true
	}
	return false
}

type Product struct {
	Base
	Name        string          `db:"name"`
	Description *string         `db:"description"`
	Category    ProductCategory `db:"category"`
	Price       float64         `db:"price"`
	Stock       int             `db:"stock"`
	ImageURL    *string         `db:"image_url"`
	IsActive    bool            `db:"is_active"`
}
