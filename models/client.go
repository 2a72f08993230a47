package models

import "time"

// Client is a customer the invoices are billed to.
type Client struct {
	ID            string    `bson:"id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	ContactPerson string    `bson:"contactPerson,omitempty" json:"contactPerson,omitempty"`
	Email         string    `bson:"email,omitempty" json:"email,omitempty"`
	PhoneNumber   string    `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Address       string    `bson:"address,omitempty" json:"address,omitempty"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}
