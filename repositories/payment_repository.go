package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vectornet/vectornet_backend/models"
)

type PaymentRepository struct {
	collection *mongo.Collection
}

func NewPaymentRepository(db *mongo.Client) *PaymentRepository {
	return &PaymentRepository{
		collection: db.Database("vectornet").Collection("payments"),
	}
}

func (r *PaymentRepository) FindByID(id primitive.ObjectID) (*models.Payment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var payment models.Payment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&payment)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindByNetwork loads the full payment snapshot of one network for report
// aggregation, ordered by creation time.
func (r *PaymentRepository) FindByNetwork(networkID primitive.ObjectID) ([]models.Payment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"networkId": networkID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *PaymentRepository) FindByPartner(partnerID primitive.ObjectID, page, limit int64) ([]models.Payment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if limit > 0 {
		opts.SetSkip((page - 1) * limit).SetLimit(limit)
	}
	cursor, err := r.collection.Find(ctx, bson.M{"partnerId": partnerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *PaymentRepository) InsertMany(payments []models.Payment) error {
	if len(payments) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	docs := make([]interface{}, len(payments))
	now := time.Now()
	for i := range payments {
		if payments[i].ID.IsZero() {
			payments[i].ID = primitive.NewObjectID()
		}
		payments[i].CreatedAt = now
		docs[i] = payments[i]
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// MarkPaid moves a pending payment to paid. Returns false when the payment
// was not pending, so paid and cancelled records cannot be paid twice.
func (r *PaymentRepository) MarkPaid(id primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"status": models.PaymentStatusPaid,
			"paidAt": now,
		},
	}
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.PaymentStatusPending}, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

// CancelPendingByBusiness cancels every pending payment of a business.
// Payments already paid are left untouched.
func (r *PaymentRepository) CancelPendingByBusiness(businessID primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"status": models.PaymentStatusCancelled,
		},
	}
	result, err := r.collection.UpdateMany(ctx,
		bson.M{"businessId": businessID, "status": models.PaymentStatusPending}, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
