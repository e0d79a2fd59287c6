package api

import "storefront/internal/model"

// ProductRequest multipart 表單欄位；圖片另以 image 檔案欄位上傳
// swagger:model api.ProductRequest
type ProductRequest struct {
	Name          string  `form:"name" json:"name" validate:"required" example:"Oak dining table"`
	Description   string  `form:"description" json:"description" example:"Solid oak, seats six"`
	Category      string  `form:"category" json:"category" validate:"required" example:"furniture"`
	PriceAmount   float64 `form:"priceAmount" json:"priceAmount" validate:"min=0" example:"499.99"`
	PriceCurrency string  `form:"priceCurrency" json:"priceCurrency" example:"USD"`
	PriceUnit     string  `form:"priceUnit" json:"priceUnit" example:"piece"`
	IsActive      string  `form:"isActive" json:"isActive" validate:"omitempty,oneof=true false" example:"true"`
}

// swagger:model api.ProductListResponse
type ProductListResponse struct {
	Products   []model.Product `json:"products"`
	Pagination Pagination      `json:"pagination"`
}
