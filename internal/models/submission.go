package models

import "time"

// SubmissionForm is a public intake request. Append-only, no lifecycle.
type SubmissionForm struct {
	ID     string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name   string `json:"name" gorm:"type:varchar(255)" validate:"required,max=255"`
	Gender string `json:"gender" gorm:"type:varchar(100)" validate:"required,max=100"`
	Email  string `json:"email" gorm:"type:varchar(255)" validate:"required,email"`
	Size   string `json:"size" gorm:"type:varchar(100)" validate:"required,max=100"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
