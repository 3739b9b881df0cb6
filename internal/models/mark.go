package models

import "time"

// Mark bounds.
const (
	MinMark = 2
	MaxMark = 5
)

// Mark is a grade given by a teacher to a student for a subject.
type Mark struct {
	ID        int64     `db:"id" json:"id"`
	Mark      int16     `db:"mark" json:"mark"`
	StudentID int64     `db:"student_id" json:"student_id"`
	SubjectID int64     `db:"subject_id" json:"subject_id"`
	TeacherID int64     `db:"teacher_id" json:"teacher_id"`
	Time      time.Time `db:"time" json:"time"`
}

// MarkFilter captures the supported filters for listing marks.
type MarkFilter struct {
	StudentIDs []int64
	TeacherIDs []int64
	SubjectIDs []int64
	Least      *int16
	Most       *int16
	After      *time.Time
	Before     *time.Time
	Count      int
	Offset     int
}
