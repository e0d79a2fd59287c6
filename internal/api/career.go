package api

// swagger:model api.CareerRequest
type CareerRequest struct {
	Title          string   `json:"title" form:"title" validate:"required" example:"Backend Engineer"`
	Department     string   `json:"department" form:"department" example:"Engineering"`
	Location       string   `json:"location" form:"location" example:"Remote"`
	EmploymentType string   `json:"employmentType" form:"employmentType" validate:"omitempty,oneof=full-time part-time contract internship" example:"full-time"`
	Description    string   `json:"description" form:"description" validate:"required" example:"Build and run our APIs"`
	Requirements   []string `json:"requirements" form:"requirements" example:"Go,PostgreSQL"`
	IsActive       *bool    `json:"isActive" form:"isActive" example:"true"`
}

// ApplyRequest multipart 表單欄位；履歷以 resume 檔案欄位上傳
// swagger:model api.ApplyRequest
type ApplyRequest struct {
	FullName    string `form:"fullName" json:"fullName" validate:"required" example:"Sam Park"`
	Email       string `form:"email" json:"email" validate:"required,email" example:"sam@example.com"`
	Phone       string `form:"phone" json:"phone" example:"+1 555 0101"`
	CoverLetter string `form:"coverLetter" json:"coverLetter" example:"I would love to join."`
}

// swagger:model api.UpdateApplicationStatusRequest
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" form:"status" validate:"required,oneof=pending reviewed shortlisted rejected hired" example:"shortlisted"`
}
