// models/payment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentCategory identifies which slice of a business commission a
// payment record represents.
type PaymentCategory string

const (
	PaymentCategoryNetwork      PaymentCategory = "network"      // network-level share
	PaymentCategoryRecommender  PaymentCategory = "recommender"  // level-1 recommender share
	PaymentCategoryIntermediate PaymentCategory = "intermediate" // level-2 recommender share
	PaymentCategoryParticipant  PaymentCategory = "participant"  // transacting partner share
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Payment is a commission payment record, created once when a business is
// recorded and mutated only by status transitions (pending -> paid, or
// -> cancelled when the business is cancelled). PartnerID is nil for
// network-level shares, which have no partner beneficiary.
type Payment struct {
	ID         primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	BusinessID primitive.ObjectID  `json:"businessId" bson:"businessId"`
	NetworkID  primitive.ObjectID  `json:"networkId" bson:"networkId"`
	PartnerID  *primitive.ObjectID `json:"partnerId,omitempty" bson:"partnerId,omitempty"`
	Category   PaymentCategory     `json:"category" bson:"category"`
	Amount     float64             `json:"amount" bson:"amount"`
	Status     PaymentStatus       `json:"status" bson:"status"`
	CreatedAt  time.Time           `json:"createdAt" bson:"createdAt"`
	PaidAt     *time.Time          `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
}
