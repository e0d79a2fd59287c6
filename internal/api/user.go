package api

import (
	"time"

	"storefront/internal/model"
)

// swagger:model api.SignupRequest
type SignupRequest struct {
	FullName string `json:"fullName" form:"fullName" validate:"required" example:"Alice Chen"`
	Email    string `json:"email" form:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" form:"password" validate:"required" example:"Secret123"`
}

// swagger:model api.LoginRequest
// LoginRequest 不檢查 email 格式，格式錯誤同樣回 Wrong credentials
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required" example:"alice@example.com"`
	Password string `json:"password" form:"password" validate:"required" example:"Secret123"`
}

// swagger:model api.UpdateRoleRequest
type UpdateRoleRequest struct {
	Role string `json:"role" form:"role" validate:"required,oneof=user admin" example:"admin"`
}

// UserResponse 不含密碼雜湊
// swagger:model api.UserResponse
type UserResponse struct {
	ID         int       `json:"id" example:"1"`
	FullName   string    `json:"fullName" example:"Alice Chen"`
	Email      string    `json:"email" example:"alice@example.com"`
	ProfilePic string    `json:"profilePic" example:"/uploads/profiles/3f1c.png"`
	Role       string    `json:"role" example:"user"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// swagger:model api.AuthResponse
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		ProfilePic: u.ProfilePic,
		Role:       string(u.Role),
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func NewUserResponses(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
