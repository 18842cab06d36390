package domain

import "time"

type UserType string

const (
	UserTypeAdmin    UserType = "ADMIN"
	UserTypeManager  UserType = "MANAGER"
	UserTypeEmployee UserType = "EMPLOYEE"
)

type User struct {
	ID            int64     `json:"id"`
	CompanyID     int64     `json:"companyID"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Avatar        string    `json:"avatar"`
	UserType      UserType  `json:"userType"`
	EmailVerified bool      `json:"emailVerified"`
	IsBlacklisted bool      `json:"isBlacklisted"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// ShortName is the "Jane D." form used in notification messages.
func (u *User) ShortName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName[:1] + "."
}

func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin
}
