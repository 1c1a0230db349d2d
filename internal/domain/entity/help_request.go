package entity

import (
	"strings"
	"time"
)

type Urgency string

const (
	UrgencyHigh   Urgency = "alta"
	UrgencyMedium Urgency = "media"
	UrgencyLow    Urgency = "baja"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyHigh, UrgencyMedium, UrgencyLow:
		return true
	}
	return false
}

// Status is shared by help requests and help offers.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Kinds of help people ask for or offer.
var HelpTypes = []string{"bombeo", "limpieza", "alojamiento", "equipos", "voluntariado", "otros"}

func ValidHelpType(t string) bool {
	for _, ht := range HelpTypes {
		if ht == t {
			return true
		}
	}
	return false
}

type HelpRequest struct {
	ID          string    `json:"id" firestore:"id"`
	Type        string    `json:"type" firestore:"type"`
	Description string    `json:"description" firestore:"description"`
	Address     string    `json:"address" firestore:"address"`
	Contact     string    `json:"contact" firestore:"contact"`
	Urgency     Urgency   `json:"urgency" firestore:"urgency"`
	Status      Status    `json:"status" firestore:"status"`
	CreatedBy   string    `json:"created_by" firestore:"createdBy"`
	PhotoURLs   []string  `json:"photo_urls,omitempty" firestore:"photoUrls,omitempty"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at,omitempty" firestore:"updatedAt,omitempty"`
}

// Matches reports whether the request passes a type filter and a free-text
// query over description, address and type. Empty filters match everything.
func (r *HelpRequest) Matches(helpType, query string) bool {
	if helpType != "" && r.Type != helpType {
		return false
	}
	return containsFold(query, r.Description, r.Address, r.Type)
}

func containsFold(query string, fields ...string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
