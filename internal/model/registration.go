package model

import "time"

// Registration is the lightweight attendee sign-up used by the landing
// page counter. Duplicates are allowed here; the count endpoint dedupes
// by email instead.
type Registration struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	VNumber   string    `gorm:"size:20;not null" json:"vnumber"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
