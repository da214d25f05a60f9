package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pastryvapors/promohub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Submission repository errors
var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadyReviewed    = errors.New("submission already reviewed")
)

// ApprovedTotal aggregates a promoter's approved submissions
type ApprovedTotal struct {
	Points int
	Count  int
}

// SubmissionRepository defines the interface for submission data operations
type SubmissionRepository interface {
	Create(ctx context.Context, sub *models.Submission) error
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	GetByUserID(ctx context.Context, userID uint) ([]models.Submission, error)
	GetAll(ctx context.Context) ([]models.Submission, error)
	GetByStatus(ctx context.Context, status string) ([]models.Submission, error)

	// MarkReviewed flips a pending submission to approved or rejected.
	// The update is guarded on status == pending so a submission can be
	// reviewed at most once; a second attempt returns ErrAlreadyReviewed.
	MarkReviewed(ctx context.Context, id, status string, points int, reviewedAt time.Time) error

	// Revert puts a reviewed submission back to pending with zero points.
	// Compensation path for a failed credit after approval.
	Revert(ctx context.Context, id string) error

	Delete(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID uint) (int64, error)
	CountByUserID(ctx context.Context, userID uint) (int64, error)

	// UserIDsBetween returns the set of promoter ids with at least one
	// submission created in [start, end)
	UserIDsBetween(ctx context.Context, start, end time.Time) (map[uint]bool, error)

	// ApprovedTotals aggregates points and counts of approved submissions
	// per promoter (reconciliation)
	ApprovedTotals(ctx context.Context) (map[uint]ApprovedTotal, error)
}

// MongoSubmissionRepository implements SubmissionRepository for MongoDB
type MongoSubmissionRepository struct {
	collection *mongo.Collection
}

// NewMongoSubmissionRepository creates a new MongoSubmissionRepository
func NewMongoSubmissionRepository(db *mongo.Database) *MongoSubmissionRepository {
	return &MongoSubmissionRepository{collection: db.Collection("submissions")}
}

// Create inserts a new pending submission
func (r *MongoSubmissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	sub.ID = primitive.NewObjectID()
	sub.Status = models.StatusPending
	sub.Points = 0
	sub.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, sub)
	return err
}

// GetByID retrieves a submission by ID
func (r *MongoSubmissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid submission ID format: %w", err)
	}

	var sub models.Submission
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&sub)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// GetByUserID retrieves a promoter's submissions, newest first
func (r *MongoSubmissionRepository) GetByUserID(ctx context.Context, userID uint) ([]models.Submission, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

// GetAll retrieves all submissions, newest first
func (r *MongoSubmissionRepository) GetAll(ctx context.Context) ([]models.Submission, error) {
	return r.find(ctx, bson.M{})
}

// GetByStatus retrieves submissions with the given status, newest first
func (r *MongoSubmissionRepository) GetByStatus(ctx context.Context, status string) ([]models.Submission, error) {
	return r.find(ctx, bson.M{"status": status})
}

func (r *MongoSubmissionRepository) find(ctx context.Context, filter bson.M) ([]models.Submission, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []models.Submission
	if err = cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// MarkReviewed flips pending -> approved/rejected exactly once
func (r *MongoSubmissionRepository) MarkReviewed(ctx context.Context, id, status string, points int, reviewedAt time.Time) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid submission ID format: %w", err)
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "status": models.StatusPending},
		bson.M{"$set": bson.M{
			"status":      status,
			"points":      points,
			"reviewed_at": reviewedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Either gone or no longer pending; distinguish for the caller
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": objID})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrSubmissionNotFound
		}
		return ErrAlreadyReviewed
	}
	return nil
}

// Revert returns a submission to the pending state with zero points
func (r *MongoSubmissionRepository) Revert(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid submission ID format: %w", err)
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$set":   bson.M{"status": models.StatusPending, "points": 0},
		"$unset": bson.M{"reviewed_at": ""},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

// Delete removes a submission by ID
func (r *MongoSubmissionRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid submission ID format: %w", err)
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

// DeleteByUserID removes every submission owned by a promoter (kick)
func (r *MongoSubmissionRepository) DeleteByUserID(ctx context.Context, userID uint) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByUserID counts submissions owned by a promoter
func (r *MongoSubmissionRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
}

// UserIDsBetween scans the day window for active promoters
func (r *MongoSubmissionRepository) UserIDsBetween(ctx context.Context, start, end time.Time) (map[uint]bool, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"created_at": bson.M{"$gte": start, "$lt": end}},
		options.Find().SetProjection(bson.M{"user_id": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ids := make(map[uint]bool)
	for cursor.Next(ctx) {
		var doc struct {
			UserID uint `bson:"user_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids[doc.UserID] = true
	}
	return ids, cursor.Err()
}

// ApprovedTotals aggregates approved points and counts per promoter
func (r *MongoSubmissionRepository) ApprovedTotals(ctx context.Context) (map[uint]ApprovedTotal, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"status": models.StatusApproved}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":    "$user_id",
			"points": bson.M{"$sum": "$points"},
			"count":  bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	totals := make(map[uint]ApprovedTotal)
	for cursor.Next(ctx) {
		var doc struct {
			UserID uint `bson:"_id"`
			Points int  `bson:"points"`
			Count  int  `bson:"count"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		totals[doc.UserID] = ApprovedTotal{Points: doc.Points, Count: doc.Count}
	}
	return totals, cursor.Err()
}
