package entity

import "time"

// Resource is an inventory entry: an item, how many are on hand and who to call.
type Resource struct {
	ID        string    `json:"id" firestore:"id"`
	Item      string    `json:"item" firestore:"item"`
	Details   string    `json:"details" firestore:"details"`
	Quantity  int       `json:"quantity" firestore:"quantity"`
	Contact   string    `json:"contact" firestore:"contact"`
	CreatedBy string    `json:"created_by" firestore:"createdBy"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at,omitempty" firestore:"updatedAt,omitempty"`
}

func (r *Resource) Matches(query string) bool {
	return containsFold(query, r.Item, r.Details)
}
