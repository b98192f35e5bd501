package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"-"`
	Role     string `json:"role" gorm:"default:'vendor'"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

func (u *User) IsVendor() bool {
	return u.Role == "vendor"
}
