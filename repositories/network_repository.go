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

type NetworkRepository struct {
	collection *mongo.Collection
}

func NewNetworkRepository(db *mongo.Client) *NetworkRepository {
	return &NetworkRepository{
		collection: db.Database("vectornet").Collection("networks"),
	}
}

func (r *NetworkRepository) FindByID(id primitive.ObjectID) (*models.Network, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var network models.Network
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&network)
	if err != nil {
		return nil, err
	}
	return &network, nil
}

func (r *NetworkRepository) FindByReferralCode(code string) (*models.Network, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var network models.Network
	err := r.collection.FindOne(ctx, bson.M{"referralCode": code}).Decode(&network)
	if err != nil {
		return nil, err
	}
	return &network, nil
}

func (r *NetworkRepository) FindAll() ([]models.Network, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var networks []models.Network
	if err := cursor.All(ctx, &networks); err != nil {
		return nil, err
	}
	return networks, nil
}

func (r *NetworkRepository) Insert(network *models.Network) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	network.CreatedAt = time.Now()
	network.UpdatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, network)
	if err != nil {
		return err
	}
	network.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *NetworkRepository) Update(id primitive.ObjectID, name, description string, isActive bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"name":        name,
			"description": description,
			"isActive":    isActive,
			"updatedAt":   time.Now(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}
