package models

// Subject represents an academic subject.
type Subject struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"subject" json:"name"`
}

// NamedFilter is shared by resources filtered only by id and name.
type NamedFilter struct {
	ID     *int64
	Name   string
	Count  int
	Offset int
}
