package api

// swagger:model api.CreateContactRequest
type CreateContactRequest struct {
	Name    string `json:"name" form:"name" validate:"required" example:"Kim"`
	Email   string `json:"email" form:"email" validate:"required,email" example:"kim@example.com"`
	Phone   string `json:"phone" form:"phone" example:"+1 555 0102"`
	Subject string `json:"subject" form:"subject" validate:"required,max=200" example:"Wholesale pricing"`
	Message string `json:"message" form:"message" validate:"required,max=5000" example:"Do you offer bulk discounts?"`
}

// swagger:model api.UpdateContactStatusRequest
type UpdateContactStatusRequest struct {
	Status string `json:"status" form:"status" validate:"required,oneof=new read replied archived" example:"replied"`
}
