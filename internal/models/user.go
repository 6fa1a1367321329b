package models

import "time"

// Role determines which routes a user may reach.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCreator Role = "creator"
	RoleUser    Role = "user"
)

// User represents an account in the credential store.
type User struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	FirstName string `json:"firstName" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	LastName  string `json:"lastName" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Pronoun   string `json:"pronoun" gorm:"type:varchar(50)" validate:"omitempty,max=50"`
	Email     string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	// Password holds the bcrypt hash; json:"-" keeps it out of every
	// response, including products that embed their creator.
	Password  string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	Role      Role   `json:"role" gorm:"type:varchar(20);default:user" validate:"omitempty,oneof=admin creator user"`

	// Reset token and expiry are either both set or both absent.
	ResetPasswordToken   string     `json:"-" gorm:"type:varchar(255)"`
	ResetPasswordExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserSummary is the client-facing projection of a User. It never carries the
// password hash or the reset-token pair.
type UserSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Pronoun   string `json:"pronoun"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// Summary projects the user down to its safe fields.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Pronoun:   u.Pronoun,
		Email:     u.Email,
		Role:      u.Role,
	}
}

// UserSearchFilters are the optional directory search criteria. Name and email
// filters match substrings; role matches exactly.
type UserSearchFilters struct {
	FirstName string
	LastName  string
	Email     string
	Role      string
	Page      int
}
