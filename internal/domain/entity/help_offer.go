package entity

import "time"

type HelpOffer struct {
	ID           string    `json:"id" firestore:"id"`
	Type         string    `json:"type" firestore:"type"`
	Description  string    `json:"description" firestore:"description"`
	Availability string    `json:"availability" firestore:"availability"`
	Contact      string    `json:"contact" firestore:"contact"`
	Status       Status    `json:"status" firestore:"status"`
	CreatedBy    string    `json:"created_by" firestore:"createdBy"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at,omitempty" firestore:"updatedAt,omitempty"`
}

func (o *HelpOffer) Matches(helpType, query string) bool {
	if helpType != "" && o.Type != helpType {
		return false
	}
	return containsFold(query, o.Description, o.Availability, o.Type)
}
