package models

// Class represents a group of students, e.g. "10A".
type Class struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"class" json:"name"`
}
