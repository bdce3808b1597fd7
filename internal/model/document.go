package model

import "time"

// Document is an uploaded file attached to a project or a task.
type Document struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Name      string    `json:"name" db:"name"`
	Filename  string    `json:"filename" db:"filename"`
	Content   []byte    `json:"-" db:"content"`
	DocDate   time.Time `json:"doc_date" db:"doc_date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
