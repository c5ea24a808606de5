package model

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	VNumber      string    `gorm:"size:20;uniqueIndex;not null" json:"vnumber"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	ResumePath   *string   `gorm:"type:text" json:"resume_path,omitempty"`
	Bio          *string   `gorm:"type:text" json:"bio,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Registrations []EventRegistration `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Event struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	EventDate   *time.Time `json:"event_date,omitempty"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
}

// EventRegistration joins users to events. The composite unique index is
// what turns a double sign-up into gorm.ErrDuplicatedKey.
type EventRegistration struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"uniqueIndex:idx_user_event;not null" json:"user_id"`
	EventID      uint      `gorm:"uniqueIndex:idx_user_event;not null" json:"event_id"`
	Status       string    `gorm:"size:50;default:registered" json:"status"`
	RegisteredAt time.Time `gorm:"autoCreateTime" json:"registered_at"`
}
