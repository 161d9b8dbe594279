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

type PartnerRepository struct {
	collection *mongo.Collection
}

func NewPartnerRepository(db *mongo.Client) *PartnerRepository {
	return &PartnerRepository{
		collection: db.Database("vectornet").Collection("partners"),
	}
}

// FindByNetwork loads the full partner snapshot of one network, ordered
// by creation time so downstream tree builds see a stable input order.
func (r *PartnerRepository) FindByNetwork(networkID primitive.ObjectID) ([]models.Partner, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"networkId": networkID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var partners []models.Partner
	if err := cursor.All(ctx, &partners); err != nil {
		return nil, err
	}
	return partners, nil
}

func (r *PartnerRepository) FindByID(id primitive.ObjectID) (*models.Partner, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var partner models.Partner
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&partner)
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *PartnerRepository) FindByReferralCode(code string) (*models.Partner, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var partner models.Partner
	err := r.collection.FindOne(ctx, bson.M{"referralCode": code}).Decode(&partner)
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *PartnerRepository) Insert(partner *models.Partner) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	partner.CreatedAt = time.Now()
	partner.UpdatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, partner)
	if err != nil {
		return err
	}
	partner.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *PartnerRepository) UpdateRecommender(id primitive.ObjectID, recommenderID *primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	update := bson.M{"$set": set}
	if recommenderID != nil {
		set["recommenderId"] = *recommenderID
	} else {
		update["$unset"] = bson.M{"recommenderId": ""}
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *PartnerRepository) SetActive(id primitive.ObjectID, active bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"isActive":  active,
			"updatedAt": time.Now(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// AncestorChain walks recommender links upward from the given partner,
// nearest ancestor first, stopping at the network root or a dangling
// reference. The walk is bounded so a corrupted chain cannot loop.
func (r *PartnerRepository) AncestorChain(partner *models.Partner, networkID primitive.ObjectID, maxSteps int) ([]models.Partner, error) {
	chain := make([]models.Partner, 0, 4)
	current := partner
	for step := 0; step < maxSteps; step++ {
		if current.RecommenderID == nil || *current.RecommenderID == networkID {
			return chain, nil
		}
		next, err := r.FindByID(*current.RecommenderID)
		if err == mongo.ErrNoDocuments {
			return chain, nil
		}
		if err != nil {
			return nil, err
		}
		chain = append(chain, *next)
		current = next
	}
	return chain, nil
}
