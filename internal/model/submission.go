package model

import "time"

// Submission is one showcased hackathon project. Rows are append-only:
// the gallery never edits or deletes an entry once it is up.
type Submission struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProjectName string    `gorm:"size:255;not null" json:"projectName"`
	UserName    string    `gorm:"size:255;not null" json:"userName"`
	ProjectURL  string    `gorm:"type:text;not null" json:"projectUrl"`
	ImageURL    string    `gorm:"type:text;not null" json:"imageUrl"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
