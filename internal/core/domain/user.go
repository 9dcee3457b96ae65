package domain

import "time"

// AuthProvider identifies an external identity provider linked to a user.
type AuthProvider string

// ProviderGoogle is the only external provider currently supported.
const ProviderGoogle AuthProvider = "google"

// User represents a bulletin board account.
//
// PasswordHash is empty for accounts created through Google sign-in that
// never set a local password; ProviderUserID is empty for purely local
// accounts. At least one of the two is always present.
type User struct {
	UserID            string       `json:"userID"`
	Email             string       `json:"email"`
	Username          string       `json:"username"`
	PasswordHash      string       `json:"-"`
	AuthProvider      AuthProvider `json:"authProvider,omitempty"`
	ProviderUserID    string       `json:"-"`
	ProfilePictureURL string       `json:"profilePicture,omitempty"`
	IsVerified        bool         `json:"isVerified"`
	CreatedAt         time.Time    `json:"createdAt"`
}

// HasPassword reports whether local password login is possible for the user.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// ExternalIdentity is a verified assertion from an identity provider.
// Verification of the underlying provider token (signature, audience) happens
// at the boundary before this value is constructed.
type ExternalIdentity struct {
	Provider       AuthProvider
	ProviderUserID string
	Email          string
	DisplayName    string
	PictureURL     string
}

// GoogleUserInfo mirrors the payload of Google's userinfo endpoint.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
