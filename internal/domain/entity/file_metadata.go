package entity

import "time"

// FileMetadata describes one uploaded object and the record it belongs to.
type FileMetadata struct {
	ID          string    `json:"id" firestore:"id"`
	URL         string    `json:"url" firestore:"url"`
	ObjectName  string    `json:"object_name" firestore:"objectName"`
	EntityType  string    `json:"entity_type" firestore:"entityType"`
	EntityID    string    `json:"entity_id" firestore:"entityId"`
	UploadedBy  string    `json:"uploaded_by" firestore:"uploadedBy"`
	ContentType string    `json:"content_type" firestore:"contentType"`
	Size        int64     `json:"size" firestore:"size"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}
