package api

// CreateCommentRequest 未登入者必須提供 commenterName 與 email
// swagger:model api.CreateCommentRequest
type CreateCommentRequest struct {
	CommenterName string `json:"commenterName" form:"commenterName" example:"Guest Buyer"`
	Email         string `json:"email" form:"email" validate:"omitempty,email" example:"guest@example.com"`
	Content       string `json:"content" form:"content" validate:"required,max=2000" example:"Great quality."`
	Rating        *int   `json:"rating" form:"rating" validate:"omitempty,min=1,max=5" example:"5"`
}
