// models/partner.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Partner is a recruited member of a network, optionally recommended by
// another partner or directly by the network. The recommender relationship
// is stored as an identifier only; parent/child structure is derived at
// report time, never embedded in the document.
type Partner struct {
	ID            primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	NetworkID     primitive.ObjectID  `json:"networkId" bson:"networkId"`
	RecommenderID *primitive.ObjectID `json:"recommenderId,omitempty" bson:"recommenderId,omitempty"`
	FullName      string              `json:"fullName" bson:"fullName"`
	Email         string              `json:"email,omitempty" bson:"email,omitempty"`
	Phone         string              `json:"phone,omitempty" bson:"phone,omitempty"`
	ReferralCode  string              `json:"referralCode,omitempty" bson:"referralCode,omitempty"`
	IsActive      bool                `json:"isActive" bson:"isActive"`
	CreatedAt     time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// IsRoot reports whether the partner hangs directly under the network root.
func (p *Partner) IsRoot() bool {
	return p.RecommenderID == nil || *p.RecommenderID == p.NetworkID
}

type PartnerRequest struct {
	NetworkID    string `json:"networkId" validate:"required"`
	FullName     string `json:"fullName" validate:"required"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	Phone        string `json:"phone,omitempty"`
	ReferralCode string `json:"referralCode,omitempty"` // recommender's code; empty joins under the network root
}

type RecommenderUpdateRequest struct {
	RecommenderID string `json:"recommenderId" validate:"required"`
}
