package models

import "gorm.io/gorm"

const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

type User struct {
	gorm.Model
	Name                   string `json:"name"`
	Email                  string `json:"email" gorm:"size:191;uniqueIndex"`
	Phone                  string `json:"phone"`
	Password               string `json:"-"`
	Role                   string `json:"role" gorm:"size:32"`
	AccountActivated       bool   `json:"accountActivated"`
	AccountActivationToken string `json:"-" gorm:"size:191;index"`
	PasswordResetToken     string `json:"-" gorm:"size:191;index"`
}

type SignupData struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
