package models

import "time"

// Document is a file stored for a project (drawings, permits, contracts).
// The binary lives in Cloudinary; this record keeps the metadata.
type Document struct {
	ID           string    `bson:"id" json:"id"`
	ProjectID    string    `bson:"projectId" json:"projectId"`
	Name         string    `bson:"name" json:"name"`
	Folder       string    `bson:"folder,omitempty" json:"folder,omitempty"`
	PublicID     string    `bson:"publicId" json:"publicId"`
	ResourceType string    `bson:"resourceType" json:"resourceType"`
	SizeBytes    int64     `bson:"sizeBytes,omitempty" json:"sizeBytes,omitempty"`
	UploadedBy   string    `bson:"uploadedBy" json:"uploadedBy"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
