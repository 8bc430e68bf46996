package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/perfboard/perfboard/internal/domain"
	"github.com/perfboard/perfboard/internal/pkg/database"
	apperrors "github.com/perfboard/perfboard/internal/pkg/errors"
	"github.com/perfboard/perfboard/internal/pkg/metrics"
)

// Fixed review document field names. Caller-supplied extra fields are
// merged alongside these; a clash is resolved in favor of the fixed
// field.
const (
	fieldEmployeeID   = "employee_id"
	fieldReviewDate   = "review_date"
	fieldReviewerName = "reviewer_name"
	fieldRating       = "overall_rating"
	fieldStrengths    = "strengths"
	fieldImprovements = "areas_for_improvement"
	fieldComments     = "comments"
	fieldGoals        = "goals_for_next_period"
)

// ReviewRepository handles performance review documents in MongoDB.
// Reviews are append-only; no update or delete operation is exposed.
type ReviewRepository struct {
	db *database.MongoDB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *database.MongoDB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a review document and returns its ID as a hex
// string. The repository performs no rating or date validation: the
// write boundary is deliberately permissive and the read side coerces.
func (r *ReviewRepository) Create(ctx context.Context, employeeID int64, input *domain.ReviewInput) (string, error) {
	coll, err := r.db.Collection(ctx)
	if err != nil {
		return "", apperrors.Unavailable("review store").WithError(err)
	}

	doc := bson.M{}
	for k, v := range input.Extra {
		doc[k] = v
	}
	doc[fieldEmployeeID] = employeeID
	doc[fieldReviewDate] = input.ReviewDate
	doc[fieldReviewerName] = input.ReviewerName
	doc[fieldRating] = input.OverallRating
	doc[fieldStrengths] = emptyIfNil(input.Strengths)
	doc[fieldImprovements] = emptyIfNil(input.AreasForImprovement)
	doc[fieldComments] = input.Comments
	doc[fieldGoals] = emptyIfNil(input.GoalsForNextPeriod)

	start := time.Now()
	result, err := coll.InsertOne(ctx, doc)
	metrics.RecordDBQuery("mongo", "insert", time.Since(start))
	if err != nil {
		metrics.RecordDBError("mongo", "insert")
		return "", fmt.Errorf("failed to insert review: %w", err)
	}

	metrics.RecordReviewSubmitted()

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Sprintf("%v", result.InsertedID), nil
	}
	return oid.Hex(), nil
}

// ListForEmployee retrieves all reviews for an employee sorted by
// review date, most recent first
func (r *ReviewRepository) ListForEmployee(ctx context.Context, employeeID int64) ([]domain.Review, error) {
	coll, err := r.db.Collection(ctx)
	if err != nil {
		return nil, apperrors.Unavailable("review store").WithError(err)
	}

	opts := options.Find().SetSort(bson.D{{Key: fieldReviewDate, Value: -1}})

	start := time.Now()
	cursor, err := coll.Find(ctx, bson.M{fieldEmployeeID: employeeID}, opts)
	metrics.RecordDBQuery("mongo", "find", time.Since(start))
	if err != nil {
		metrics.RecordDBError("mongo", "find")
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []domain.Review
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode review: %w", err)
		}
		reviews = append(reviews, reviewFromDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}

// CountForEmployee returns the number of reviews stored for an employee
func (r *ReviewRepository) CountForEmployee(ctx context.Context, employeeID int64) (int64, error) {
	coll, err := r.db.Collection(ctx)
	if err != nil {
		return 0, apperrors.Unavailable("review store").WithError(err)
	}

	count, err := coll.CountDocuments(ctx, bson.M{fieldEmployeeID: employeeID})
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}

// reviewFromDocument maps a raw document into a Review, coercing
// loosely-typed fields and collecting unknown keys into Extra.
func reviewFromDocument(doc bson.M) domain.Review {
	review := domain.Review{
		ReviewDate:          domain.CoerceString(doc[fieldReviewDate]),
		ReviewerName:        domain.CoerceString(doc[fieldReviewerName]),
		OverallRating:       domain.CoerceRating(doc[fieldRating]),
		Strengths:           domain.CoerceStringSlice(plainValue(doc[fieldStrengths])),
		AreasForImprovement: domain.CoerceStringSlice(plainValue(doc[fieldImprovements])),
		Comments:            domain.CoerceString(doc[fieldComments]),
		GoalsForNextPeriod:  domain.CoerceStringSlice(plainValue(doc[fieldGoals])),
	}

	if oid, ok := doc["_id"].(primitive.ObjectID); ok {
		review.ID = oid.Hex()
	}

	switch id := doc[fieldEmployeeID].(type) {
	case int64:
		review.EmployeeID = id
	case int32:
		review.EmployeeID = int64(id)
	case int:
		review.EmployeeID = int64(id)
	case float64:
		review.EmployeeID = int64(id)
	}

	for k, v := range doc {
		switch k {
		case "_id", fieldEmployeeID, fieldReviewDate, fieldReviewerName,
			fieldRating, fieldStrengths, fieldImprovements, fieldComments, fieldGoals:
			continue
		}
		if review.Extra == nil {
			review.Extra = make(map[string]any)
		}
		review.Extra[k] = v
	}

	return review
}

// plainValue unwraps the driver's array type so type switches on
// []any in the coercion helpers match decoded documents.
func plainValue(v any) any {
	if a, ok := v.(primitive.A); ok {
		return []any(a)
	}
	return v
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
