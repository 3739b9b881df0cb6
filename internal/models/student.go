package models

import "time"

// Student represents a pupil enrolled in exactly one class.
type Student struct {
	ID           int64     `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	MiddleName   *string   `db:"middle_name" json:"middle_name"`
	EnrolledAt   time.Time `db:"enrolled_at" json:"enrolled_at"`
	ClassID      int64     `db:"class_id" json:"class_id"`
	Phone        string    `db:"phone" json:"phone"`
	PasswordHash string    `db:"password_hash" json:"-"`
}

// StudentFilter defines filter criteria for listing students.
type StudentFilter struct {
	ID       *int64
	Name     string
	ClassIDs []int64
	Count    int
	Offset   int
}
