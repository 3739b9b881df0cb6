package models

import "time"

// Employee is a staff member able to sign in.
type Employee struct {
	ID           int64     `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	MiddleName   *string   `db:"middle_name" json:"middle_name,omitempty"`
	EmployedAt   time.Time `db:"employed_at" json:"employed_at"`
	Phone        string    `db:"phone" json:"phone"`
	PasswordHash string    `db:"password_hash" json:"-"`
	MFA          bool      `db:"mfa" json:"mfa"`
	Role         Role      `db:"role" json:"role"`
}

// EmployeeFilter captures filters for listing principals.
type EmployeeFilter struct {
	ID     *int64
	Name   string
	Count  int
	Offset int
}

// Credentials is the minimal projection needed to authenticate.
type Credentials struct {
	ID           int64  `db:"id"`
	PasswordHash string `db:"password_hash"`
	Role         Role   `db:"role"`
}
