package model

import "time"

// Project is a grouping container for planned work. The AI fields
// (Description, EconomicNotes, Criticality, Tags) are rewritten by the
// project analysis action.
type Project struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Description   string    `json:"description" db:"description"`
	EconomicNotes string    `json:"economic_notes" db:"economic_notes"`
	Criticality   string    `json:"criticality" db:"criticality"`
	Methodology   string    `json:"methodology" db:"methodology"`
	CompanyID     *string   `json:"company_id,omitempty" db:"company_id"`
	ManagerUserID *string   `json:"manager_user_id,omitempty" db:"manager_user_id"`
	Archived      bool      `json:"archived" db:"archived"`
	SortOrder     int       `json:"sort_order" db:"sort_order"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	// Tags is populated by queries that join with project_tags.
	Tags []Tag `json:"tags,omitempty" db:"-"`
}

// Company owns projects and carries the profile document that gives the
// AI context about who is delivering the work.
type Company struct {
	ID              string    `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	ProfileFilename string    `json:"profile_filename" db:"profile_filename"`
	Profile         []byte    `json:"-" db:"profile"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// Milestone groups tasks inside a project (a sprint, an iteration,
// a value stream). Names are unique per project.
type Milestone struct {
	ID        string    `json:"id" db:"id"`
	ProjectID string    `json:"project_id" db:"project_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
