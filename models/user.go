// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a login account. Accounts of type "partner" are linked to a
// partner document; "admin" accounts manage networks and payouts.
type User struct {
	ID        primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Email     string              `json:"email" bson:"email"`
	Password  string              `json:"password,omitempty" bson:"password"`
	FullName  string              `json:"fullName" bson:"fullName"`
	UserType  string              `json:"userType" bson:"userType"` // "admin", "partner"
	IsActive  bool                `json:"isActive" bson:"isActive"`
	PartnerID *primitive.ObjectID `json:"partnerId,omitempty" bson:"partnerId,omitempty"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// Response is the standard API response structure
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}
