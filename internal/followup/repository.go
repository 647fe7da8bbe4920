package followup

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrFollowUpNotFound = errors.New("follow-up not found")

type FollowUpRepository struct {
	collection *mongo.Collection
}

func NewFollowUpRepository(db *mongo.Database) *FollowUpRepository {
	return &FollowUpRepository{collection: db.Collection("followups")}
}

func (r *FollowUpRepository) Create(ctx context.Context, f *FollowUp) error {
	_, err := r.collection.InsertOne(ctx, f)
	return err
}

func (r *FollowUpRepository) FindAll(ctx context.Context) ([]*FollowUp, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var result []*FollowUp
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *FollowUpRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*FollowUp, error) {
	var f FollowUp
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *FollowUpRepository) Update(ctx context.Context, id primitive.ObjectID, req FollowUpRequest) (*FollowUp, error) {
	update := bson.M{"$set": bson.M{
		"victim_name":      req.VictimName,
		"gender":           req.Gender,
		"doctor_name":      req.DoctorName,
		"needed_aid":       req.NeededAid,
		"next_appointment": req.NextAppointment,
		"action":           req.Action,
		"updatedAt":        time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var f FollowUp
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&f)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrFollowUpNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *FollowUpRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrFollowUpNotFound
	}
	return nil
}
