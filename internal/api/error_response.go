package api

// ErrorResponse 全域錯誤響應模型
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Message string `json:"message" example:"Access denied. Admin only."`
}

// MessageResponse 僅回傳訊息的成功響應
// swagger:model api.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}
