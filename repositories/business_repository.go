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

type BusinessRepository struct {
	collection *mongo.Collection
}

func NewBusinessRepository(db *mongo.Client) *BusinessRepository {
	return &BusinessRepository{
		collection: db.Database("vectornet").Collection("businesses"),
	}
}

func (r *BusinessRepository) FindByID(id primitive.ObjectID) (*models.Business, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var business models.Business
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&business)
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *BusinessRepository) FindByNetwork(networkID primitive.ObjectID, page, limit int64) ([]models.Business, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if limit > 0 {
		opts.SetSkip((page - 1) * limit).SetLimit(limit)
	}
	cursor, err := r.collection.Find(ctx, bson.M{"networkId": networkID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var businesses []models.Business
	if err := cursor.All(ctx, &businesses); err != nil {
		return nil, err
	}
	return businesses, nil
}

func (r *BusinessRepository) Insert(business *models.Business) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	business.CreatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, business)
	if err != nil {
		return err
	}
	business.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// Cancel marks a recorded business as cancelled. It only matches businesses
// still in the recorded state, so repeated cancellations are no-ops.
func (r *BusinessRepository) Cancel(id primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"status":      models.BusinessStatusCancelled,
			"cancelledAt": now,
		},
	}
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.BusinessStatusRecorded}, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}
