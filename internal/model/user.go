package model

import (
	"time"

	"github.com/google/uuid"
)

type AccountStatus string

const (
	AccountActive    AccountStatus = "ACTIVE"
	AccountInactive  AccountStatus = "INACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
	AccountDeleted   AccountStatus = "DELETED"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

type SortOrder string

const (
	SortPriority  SortOrder = "priority"
	SortCreatedAt SortOrder = "createdAt"
	SortUpdatedAt SortOrder = "updatedAt"
	SortName      SortOrder = "name"
	SortEmail     SortOrder = "email"
)

type User struct {
	ID                   uuid.UUID
	Email                string
	PasswordHash         string
	Name                 string
	Bio                  *string
	IsEmailVerified      bool
	Theme                Theme
	DefaultSort          SortOrder
	ShowCompletedTodos   bool
	NotificationsEnabled bool
	LastLoginAt          *time.Time
	AccountStatus        AccountStatus
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// PublicUser is the redacted profile returned by login.
type PublicUser struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Theme       Theme     `json:"theme"`
	DefaultSort SortOrder `json:"defaultSort"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Theme:       u.Theme,
		DefaultSort: u.DefaultSort,
	}
}

// UserResponse is the account view for the /users endpoints. The password
// hash never leaves the service boundary.
type UserResponse struct {
	ID                   uuid.UUID     `json:"id"`
	Email                string        `json:"email"`
	Name                 string        `json:"name"`
	Bio                  *string       `json:"bio"`
	IsEmailVerified      bool          `json:"isEmailVerified"`
	Theme                Theme         `json:"theme"`
	DefaultSort          SortOrder     `json:"defaultSort"`
	ShowCompletedTodos   bool          `json:"showCompletedTodos"`
	NotificationsEnabled bool          `json:"notificationsEnabled"`
	LastLoginAt          *time.Time    `json:"lastLoginAt"`
	AccountStatus        AccountStatus `json:"accountStatus"`
	CreatedAt            time.Time     `json:"createdAt"`
	UpdatedAt            time.Time     `json:"updatedAt"`
}

func (u *User) Response() UserResponse {
	return UserResponse{
		ID:                   u.ID,
		Email:                u.Email,
		Name:                 u.Name,
		Bio:                  u.Bio,
		IsEmailVerified:      u.IsEmailVerified,
		Theme:                u.Theme,
		DefaultSort:          u.DefaultSort,
		ShowCompletedTodos:   u.ShowCompletedTodos,
		NotificationsEnabled: u.NotificationsEnabled,
		LastLoginAt:          u.LastLoginAt,
		AccountStatus:        u.AccountStatus,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Name     string  `json:"name" binding:"required"`
	Password string  `json:"password" binding:"required,min=6"`
	Bio      *string `json:"bio"`
}

type UpdateUserRequest struct {
	Name                 *string    `json:"name" binding:"omitempty,min=2,max=100"`
	Bio                  *string    `json:"bio"`
	Theme                *Theme     `json:"theme" binding:"omitempty,oneof=light dark system"`
	DefaultSort          *SortOrder `json:"defaultSort" binding:"omitempty,oneof=priority createdAt updatedAt name email"`
	ShowCompletedTodos   *bool      `json:"showCompletedTodos"`
	NotificationsEnabled *bool      `json:"notificationsEnabled"`
}
