package entity

import (
	"strings"
	"time"
)

const (
	RoleUser        = "user"
	RoleCoordinator = "coordinator"

	MinDisplayNameLength = 3
)

// UserProfile is keyed by the identity provider's uid.
type UserProfile struct {
	ID          string    `json:"id" firestore:"id"`
	DisplayName string    `json:"display_name" firestore:"displayName"`
	PhoneNumber string    `json:"phone_number" firestore:"phoneNumber"`
	Role        string    `json:"role" firestore:"role"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (u *UserProfile) IsCoordinator() bool {
	return u != nil && u.Role == RoleCoordinator
}

// HasDisplayName reports whether the profile step of the login flow is done.
func (u *UserProfile) HasDisplayName() bool {
	return u != nil && len([]rune(strings.TrimSpace(u.DisplayName))) >= MinDisplayNameLength
}
