package dto

// RegisterRequest describes the employee sign-up payload.
type RegisterRequest struct {
	Email     string `json:"email"`
	ServiceNo string `json:"serviceNo"`
	Section   string `json:"section"`
	Password  string `json:"password"`
}

// AuthRequest describes login/password payload. Login accepts an email
// address or a service number.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// AuthResponse carries the issued token and basic employee identity.
type AuthResponse struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	ServiceNo string `json:"serviceNo"`
	Section   string `json:"section"`
}
