package models

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=50"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=50"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type AuthResponse struct {
	SessionToken string `json:"session_token"`
	User         User   `json:"user"`
}

// Dashboard bundles the current usage against the user's tier limits for
// the account page.
type Dashboard struct {
	User          User `json:"user"`
	Tier          Tier `json:"tier"`
	MemorialCount int  `json:"memorial_count"`
	PhotoCount    int  `json:"photo_count"`
	MaxMemorials  int  `json:"max_memorials"`
	MaxPhotos     int  `json:"max_photos"`
}
