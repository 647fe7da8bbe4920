package cases

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrCaseNotFound = errors.New("case not found")

type CaseRepository struct {
	collection *mongo.Collection
}

func NewCaseRepository(db *mongo.Database) *CaseRepository {
	return &CaseRepository{collection: db.Collection("cases")}
}

func (r *CaseRepository) Create(ctx context.Context, c *Case) error {
	_, err := r.collection.InsertOne(ctx, c)
	return err
}

func (r *CaseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Case, error) {
	var c Case
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CaseRepository) findMany(ctx context.Context, filter bson.M) ([]*Case, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var result []*Case
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *CaseRepository) FindAll(ctx context.Context) ([]*Case, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *CaseRepository) FindByCreator(ctx context.Context, userID primitive.ObjectID) ([]*Case, error) {
	return r.findMany(ctx, bson.M{"createdBy": userID})
}

func (r *CaseRepository) FindAssignedToRIB(ctx context.Context, userID primitive.ObjectID) ([]*Case, error) {
	return r.findMany(ctx, bson.M{"assignedToRIB": userID})
}

func (r *CaseRepository) FindAssignedToHospital(ctx context.Context, userID primitive.ObjectID) ([]*Case, error) {
	return r.findMany(ctx, bson.M{"assignedToHospital": userID})
}

func (r *CaseRepository) FindByRiskLevel(ctx context.Context, riskLevel string) ([]*Case, error) {
	return r.findMany(ctx, bson.M{"current_risk_level": riskLevel})
}

func (r *CaseRepository) FindEmergencies(ctx context.Context) ([]*Case, error) {
	return r.findMany(ctx, bson.M{"isEmergency": true})
}

// applyUpdate runs a single atomic update and returns the updated document.
// All case mutations go through Mongo update operators, never through a
// fetch-then-save cycle, so concurrent writers cannot clobber each other's
// fields.
func (r *CaseRepository) applyUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*Case, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c Case
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CaseRepository) SetFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Case, error) {
	return r.applyUpdate(ctx, id, bson.M{"$set": fields})
}

// AssignRIB adds the responder to the RIB track. $addToSet keeps the
// assignment set additive and idempotent.
func (r *CaseRepository) AssignRIB(ctx context.Context, caseID, userID primitive.ObjectID) (*Case, error) {
	return r.applyUpdate(ctx, caseID, bson.M{"$addToSet": bson.M{"assignedToRIB": userID}})
}

func (r *CaseRepository) AssignHospital(ctx context.Context, caseID, userID primitive.ObjectID) (*Case, error) {
	return r.applyUpdate(ctx, caseID, bson.M{"$addToSet": bson.M{"assignedToHospital": userID}})
}

func (r *CaseRepository) SetRIBDecision(ctx context.Context, id primitive.ObjectID, accepted bool) (*Case, error) {
	return r.applyUpdate(ctx, id, bson.M{"$set": bson.M{"isRIBAccepted": accepted}})
}

func (r *CaseRepository) SetHospitalDecision(ctx context.Context, id primitive.ObjectID, accepted bool) (*Case, error) {
	return r.applyUpdate(ctx, id, bson.M{"$set": bson.M{"isHospitalAccepted": accepted}})
}

func (r *CaseRepository) SetProgress(ctx context.Context, id primitive.ObjectID, req ProgressRequest, updatedBy primitive.ObjectID) (*Case, error) {
	return r.applyUpdate(ctx, id, bson.M{"$set": bson.M{
		"progress":           req.Progress,
		"responseText":       req.ResponseText,
		"current_risk_level": req.CurrentRiskLevel,
		"interventions":      req.Interventions,
		"updatedBy":          updatedBy,
	}})
}

func (r *CaseRepository) SetEmergency(ctx context.Context, id primitive.ObjectID, isEmergency bool) (*Case, error) {
	return r.applyUpdate(ctx, id, bson.M{"$set": bson.M{"isEmergency": isEmergency}})
}

func (r *CaseRepository) Delete(ctx context.Context, id primitive.ObjectID) (*Case, error) {
	var c Case
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CaseRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// MonthlyCounts groups cases created in the given calendar year by month.
// Months with no cases are absent from the result; the service zero-fills.
func (r *CaseRepository) MonthlyCounts(ctx context.Context, year int) (map[int]int, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": start, "$lt": end}}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$month": "$createdAt"},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		Month int `bson:"_id"`
		Count int `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	counts := make(map[int]int, len(rows))
	for _, row := range rows {
		counts[row.Month] = row.Count
	}
	return counts, nil
}
