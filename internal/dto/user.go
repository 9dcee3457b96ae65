package dto

import (
	"time"

	"github.com/corkboard/bulletin_board_app/internal/core/domain"
)

// UserResponse is the public view of a user. Password and provider subject
// fields are stripped.
type UserResponse struct {
	UserID         string    `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	IsVerified     bool      `json:"isVerified"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its public representation.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:         user.UserID,
		Email:          user.Email,
		Username:       user.Username,
		ProfilePicture: user.ProfilePictureURL,
		IsVerified:     user.IsVerified,
		CreatedAt:      user.CreatedAt,
	}
}
