package model

import "time"

// User is a login account. Tasks are assigned to users, not members.
type User struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Login       string    `json:"login" db:"login"`
	Email       string    `json:"email" db:"email"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Member is a team member (employee) that can be staffed on projects.
// It is read-only from the point of view of AI generation.
type Member struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	DisplayName string    `json:"display_name" db:"display_name"`
	WorkEmail   string    `json:"work_email" db:"work_email"`
	WorkPhone   string    `json:"work_phone" db:"work_phone"`
	MobilePhone string    `json:"mobile_phone" db:"mobile_phone"`
	AIProfile   string    `json:"ai_profile" db:"ai_profile"`
	UserID      *string   `json:"user_id,omitempty" db:"user_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// User is populated when the member is linked to a login account.
	User *User `json:"user,omitempty" db:"-"`
}

// Label returns the display name, falling back to the raw name.
func (m Member) Label() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Name
}
