package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model   `json:"-"`
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name"`
	Username     string         `json:"username" gorm:"uniqueIndex;size:30"`
	Email        string         `json:"email" gorm:"uniqueIndex"`
	Image        string         `json:"image,omitempty"`
	PasswordHash string         `json:"-"`
	Onboarded    bool           `json:"onboarded" gorm:"default:false"`
	Preferences  datatypes.JSON `json:"preferences,omitempty"`
}

// UserCompact is the author/actor summary embedded in posts, reactions and lists.
type UserCompact struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Image    string `json:"image,omitempty"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Image:    u.Image,
	}
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// OnboardingRequest completes a profile after first sign-in.
type OnboardingRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Username string `json:"username" validate:"required,username"`
	Image    string `json:"image,omitempty" validate:"omitempty,url"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Image string `json:"image,omitempty" validate:"omitempty,url"`
}

// UpdateThemeRequest is the restricted PATCH body for preferences.
type UpdateThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark system"`
}
