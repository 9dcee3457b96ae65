package dto

// RegisterRequest is the payload for local registration.
// The username rule (3-30 word characters) is registered on the gin binding
// engine at startup.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the payload for local login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleTokenRequest carries a provider ID token handed to the backend by
// popup-style frontend flows.
type GoogleTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// AuthResponse is returned by register, login and the Google token exchange.
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// CheckEmailRequest is the payload for the email availability probe.
type CheckEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// CheckUsernameRequest is the payload for the username availability probe.
type CheckUsernameRequest struct {
	Username string `json:"username" binding:"required,username"`
}

// ExistsResponse reports whether an email or username is already taken.
type ExistsResponse struct {
	Exists  bool   `json:"exists"`
	Message string `json:"message"`
}
