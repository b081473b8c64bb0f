package adaptor

import (
	"net/http"

	"spice-store/pkg/utils"

	"go.uber.org/zap"
)

type MiscHandler struct {
	config *utils.Config
	log    *zap.Logger
}

func NewMiscHandler(config *utils.Config, log *zap.Logger) *MiscHandler {
	return &MiscHandler{
		config: config,
		log:    log,
	}
}

// Health handles GET /health
func (h *MiscHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "OK", map[string]string{
		"service": h.config.App.Name,
		"status":  "healthy",
	})
}

// MerchantUPI handles GET /api/merchant-upi
//
// Public payment instructions the storefront shows at checkout.
func (h *MiscHandler) MerchantUPI(w http.ResponseWriter, r *http.Request) {
	m := h.config.Merchant
	utils.ResponseSuccess(w, "Merchant payment details", map[string]string{
		"upi_id":              m.UPIID,
		"merchant_name":       m.Name,
		"bank_name":           m.BankName,
		"bank_account_number": m.BankAccountNumber,
		"bank_ifsc_code":      m.BankIFSCCode,
		"bank_account_name":   m.BankAccountName,
		"whatsapp_number":     m.WhatsappNumber,
	})
}
