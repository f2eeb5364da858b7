package models

// RegisterRequest is the body of POST /api/users/register.
// Nickname is optional: when empty, one is generated.
type RegisterRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
	Nickname string `json:"nickname,omitempty"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	ID       int64  `json:"id"`
	LoginID  string `json:"loginId"`
	Nickname string `json:"nickname"`
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

// RefreshTokenRequest is the body of POST /api/users/refresh-token.
// Nickname is accepted for compatibility with existing clients; the new
// access token always carries the nickname stored for LoginID.
type RefreshTokenRequest struct {
	LoginID      string `json:"loginId"`
	Nickname     string `json:"nickname,omitempty"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse carries issued tokens. RefreshToken is omitted when the
// refresh endpoint did not rotate it.
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// CheckIDResponse is returned by GET /api/users/check-id.
type CheckIDResponse struct {
	Available bool `json:"available"`
}

// UserResponse is the public view of a user account.
type UserResponse struct {
	ID       int64  `json:"id"`
	LoginID  string `json:"loginId"`
	Nickname string `json:"nickname"`
	Role     Role   `json:"role"`
}

// NewUserResponse builds the public view of u.
func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		LoginID:  u.LoginID,
		Nickname: u.Nickname,
		Role:     u.Role,
	}
}
