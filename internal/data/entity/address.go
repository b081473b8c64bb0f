package entity

import "github.com/google/uuid"

type Address struct {
	Base
	UserID         uuid.UUID `db:"user_id"`
	Label          string    `db:"label"`
	RecipientName  string    `db:"recipient_name"`
	RecipientPhone string    `db:"recipient_phone"`
	Line1          string    `db:"line1"`
	Line2          *string   `db:"line2"`
	City           string    `db:"city"`
	State          string    `db:"state"`
	PostalCode     string    `db:"postal_code"`
	IsDefault      bool      `db:"is_default"`
}
