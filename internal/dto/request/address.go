package request

type CreateAddressRequest struct {
	Label          string  `json:"label" validate:"required,max=50"`
	RecipientName  string  `json:"recipient_name" validate:"required,max=100"`
	RecipientPhone string  `json:"recipient_phone" validate:"required,min=10,max=15"`
	Line1          string  `json:"line1" validate:"required,max=200"`
	Line2          *string `json:"line2,omitempty" validate:"omitempty,max=200"`
	City           string  `json:"city" validate:"required,max=100"`
	State          string  `json:"state" validate:"required,max=100"`
	PostalCode     string  `json:"postal_code" validate:"required,min=4,max=10"`
	IsDefault      bool    `json:"is_default"`
}

type UpdateAddressRequest struct {
	Label          *string `json:"label,omitempty" validate:"omitempty,max=50"`
	RecipientName  *string `json:"recipient_name,omitempty" validate:"omitempty,max=100"`
	RecipientPhone *string `json:"recipient_phone,omitempty" validate:"omitempty,min=10,max=15"`
	Line1          *string `json:"line1,omitempty" validate:"omitempty,max=200"`
	Line2          *string `json:"line2,omitempty" validate:"omitempty,max=200"`
	City           *string `json:"city,omitempty" validate:"omitempty,max=100"`
	State          *string `json:"state,omitempty" validate:"omitempty,max=100"`
	PostalCode     *string `json:"postal_code,omitempty" validate:"omitempty,min=4,max=10"`
}
