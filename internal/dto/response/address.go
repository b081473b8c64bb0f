package response

import (
	"time"

	"spice-store/internal/data/entity"
)

type AddressResponse struct {
	ID             string    `json:"id"`
	Label          string    `json:"label"`
	RecipientName  string    `json:"recipient_name"`
	RecipientPhone string    `json:"recipient_phone"`
	Line1          string    `json:"line1"`
	Line2          *string   `json:"line2,omitempty"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	PostalCode     string    `json:"postal_code"`
	IsDefault      bool      `json:"is_default"`
	CreatedAt      time.Time `json:"created_at"`
}

func AddressToResponse(addr *entity.Address) AddressResponse {
	return AddressResponse{
		ID:             addr.ID.String(),
		Label:          addr.Label,
		RecipientName:  addr.RecipientName,
		RecipientPhone: addr.RecipientPhone,
		Line1:          addr.Line1,
		Line2:          addr.Line2,
		City:           addr.City,
		State:          addr.State,
		PostalCode:     addr.PostalCode,
		IsDefault:      addr.IsDefault,
		CreatedAt:      addr.CreatedAt,
	}
}
