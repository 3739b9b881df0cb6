package models

// Teacher is an employee with role teacher joined with its linkage row.
type Teacher struct {
	Employee
	RoomID    *int64 `db:"room_id" json:"room_id,omitempty"`
	SubjectID int64  `db:"subject_id" json:"subject_id"`
}

// TeacherFilter captures filtering options for listing teachers.
type TeacherFilter struct {
	ID         *int64
	Name       string
	SubjectIDs []int64
	RoomIDs    []int64
	Count      int
	Offset     int
}
