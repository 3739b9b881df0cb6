package models

import "time"

// LoginRequest holds credentials for authenticating an employee.
type LoginRequest struct {
	Phone    string `json:"phone" validate:"required,max=32"`
	Password string `json:"password" validate:"max=256"`
}

// Claims is the validated payload of a session token.
type Claims struct {
	EmployeeID int64
	Role       Role
	ExpiresAt  time.Time
}

// Session is an issued session token with its absolute expiry.
type Session struct {
	Token     string
	ExpiresAt time.Time
}
