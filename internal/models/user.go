// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Name         string   `json:"name" gorm:"size:100;not null"`
	Email        string   `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string   `json:"-" gorm:"size:255;not null"`
	Phone        string   `json:"phone,omitempty" gorm:"size:20"`
	Role         UserRole `json:"role" gorm:"type:varchar(10);default:'user'"`
	IsActive     bool     `json:"is_active" gorm:"default:true"`

	EmailVerified            bool       `json:"email_verified" gorm:"default:false"`
	EmailVerificationToken   string     `json:"-" gorm:"size:64;index"`
	EmailVerificationExpires *time.Time `json:"-"`
	PasswordResetToken       string     `json:"-" gorm:"size:64;index"`
	PasswordResetExpires     *time.Time `json:"-"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	// Relationships
	Cart   *Cart   `json:"cart,omitempty" gorm:"foreignKey:UserID"`
	Orders []Order `json:"orders,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
