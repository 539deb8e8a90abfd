package dto

import "time"

// LoginRequest defines the staff login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse defines the data returned after a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	StaffID   string    `json:"staffID"`
	ClinicID  string    `json:"clinicID"`
	Name      string    `json:"name"`
}
