package models

// Room is a classroom optionally dedicated to a subject.
type Room struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"room" json:"name"`
	SubjectID *int64 `db:"subject_id" json:"subject_id"`
}

// RoomFilter captures filters for listing rooms.
type RoomFilter struct {
	ID         *int64
	Name       string
	SubjectIDs []int64
	Count      int
	Offset     int
}
