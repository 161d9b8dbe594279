// models/business.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BusinessStatusRecorded  = "recorded"
	BusinessStatusCancelled = "cancelled"
)

// Business is a commercial transaction generated by a partner. Recording a
// business materializes its commission payment records; cancelling it
// cancels the pending ones.
type Business struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Reference   string             `json:"reference" bson:"reference"`
	NetworkID   primitive.ObjectID `json:"networkId" bson:"networkId"`
	PartnerID   primitive.ObjectID `json:"partnerId" bson:"partnerId"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Amount      float64            `json:"amount" bson:"amount"`
	Status      string             `json:"status" bson:"status"` // "recorded", "cancelled"
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	CancelledAt *time.Time         `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
}

type BusinessRequest struct {
	PartnerID   string  `json:"partnerId" validate:"required"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
}
