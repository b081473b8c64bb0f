package request

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type UnsubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type SendNewsletterRequest struct {
	Subject     string `json:"subject" validate:"required,max=200"`
	Content     string `json:"content" validate:"required"`
	HTMLContent string `json:"html_content,omitempty"`
}
