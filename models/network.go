// models/network.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Network is the top-level organizational unit owning a set of partners.
// A partner whose recommenderId equals the network ID (or is absent) hangs
// directly under the network root.
type Network struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty"`
	ReferralCode string             `json:"referralCode,omitempty" bson:"referralCode,omitempty"`
	IsActive     bool               `json:"isActive" bson:"isActive"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type NetworkRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}
