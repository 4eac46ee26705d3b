package models

// APIResponse is the JSON envelope returned by every endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// AuthResponse is returned by register, login and anonymous sign-in.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	UserID  string `json:"userID,omitempty"`
	Role    string `json:"role,omitempty"`
}
