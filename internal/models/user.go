// internal/models/user.go
package models

// User is the staff member recorded as the creator of an order. PrintTrack is
// a single-team tool; when no user exists a fallback system user is created.
type User struct {
	BaseModel
	Email string `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Name  string `json:"name" gorm:"size:255"`
}

const (
	SystemUserEmail = "admin@printtrack.com"
	SystemUserName  = "Print Track Admin"
)
