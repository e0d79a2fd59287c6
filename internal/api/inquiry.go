package api

// swagger:model api.CreateInquiryRequest
type CreateInquiryRequest struct {
	Name      string `json:"name" form:"name" validate:"required" example:"Ann Lee"`
	Email     string `json:"email" form:"email" validate:"required,email" example:"ann@example.com"`
	Phone     string `json:"phone" form:"phone" example:"+1 555 0100"`
	Message   string `json:"message" form:"message" validate:"required,max=5000" example:"Is this available in walnut?"`
	ProductID *int   `json:"productId" form:"productId" validate:"omitempty,min=1" example:"3"`
}

// swagger:model api.UpdateInquiryStatusRequest
type UpdateInquiryStatusRequest struct {
	Status     string `json:"status" form:"status" validate:"required,oneof=pending in-progress resolved closed" example:"resolved"`
	AdminNotes string `json:"adminNotes" form:"adminNotes" example:"Replied by email"`
}
