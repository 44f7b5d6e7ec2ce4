package models

import "time"

// Instructor maps a family name to the color their cells are painted with
type Instructor struct {
	FamilyName string    `gorm:"type:text;primaryKey" json:"family_name"`
	Color      string    `gorm:"type:text" json:"color"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Instructor) TableName() string {
	return "instructors"
}

// UpsertInstructorRequest is the body of PUT /instructors/{name}
type UpsertInstructorRequest struct {
	Color string `json:"color" example:"#FF8800"`
}
