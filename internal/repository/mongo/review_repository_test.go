package mongo

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/perfboard/perfboard/internal/config"
	"github.com/perfboard/perfboard/internal/domain"
	"github.com/perfboard/perfboard/internal/pkg/database"
)

// getTestMongo returns a review store connection for integration tests.
// Returns nil if the store is not available (skips tests).
func getTestMongo(t *testing.T) *database.MongoDB {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MONGO_TEST_URI not set")
		return nil
	}

	cfg := config.MongoConfig{
		URI:        uri,
		Database:   "test_performance_reviews_db",
		Collection: "reviews",
	}

	db := database.NewMongo(cfg)
	if err := db.Ping(context.Background()); err != nil {
		t.Skipf("Skipping integration test: failed to connect to MongoDB: %v", err)
		return nil
	}

	return db
}

func cleanupReviews(t *testing.T, db *database.MongoDB, employeeID int64) {
	ctx := context.Background()
	coll, err := db.Collection(ctx)
	if err != nil {
		return
	}
	_, _ = coll.DeleteMany(ctx, bson.M{"employee_id": employeeID})
}

func testReviewInput(date string) *domain.ReviewInput {
	return &domain.ReviewInput{
		ReviewDate:          date,
		ReviewerName:        "Test Reviewer",
		OverallRating:       4.5,
		Strengths:           []string{"communication", "delivery"},
		AreasForImprovement: []string{"estimation"},
		Comments:            "Solid period overall.",
		GoalsForNextPeriod:  []string{"lead a project"},
	}
}

func TestReviewRepository_Create(t *testing.T) {
	db := getTestMongo(t)
	if db == nil {
		return
	}
	defer db.Close(context.Background())

	repo := NewReviewRepository(db)
	ctx := context.Background()
	employeeID := int64(900001)

	cleanupReviews(t, db, employeeID)
	defer cleanupReviews(t, db, employeeID)

	id, err := repo.Create(ctx, employeeID, testReviewInput("2025-06-30"))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	reviews, err := repo.ListForEmployee(ctx, employeeID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, id, reviews[0].ID)
	assert.Equal(t, employeeID, reviews[0].EmployeeID)
	assert.Equal(t, 4.5, reviews[0].OverallRating)
	assert.Equal(t, []string{"communication", "delivery"}, reviews[0].Strengths)
}

func TestReviewRepository_Create_ExtraFields(t *testing.T) {
	db := getTestMongo(t)
	if db == nil {
		return
	}
	defer db.Close(context.Background())

	repo := NewReviewRepository(db)
	ctx := context.Background()
	employeeID := int64(900002)

	cleanupReviews(t, db, employeeID)
	defer cleanupReviews(t, db, employeeID)

	input := testReviewInput("2025-03-31")
	input.Extra = map[string]any{
		"peer_feedback": "positive",
		// A fixed field name in Extra must not override the typed value
		"overall_rating": "ignored",
	}

	_, err := repo.Create(ctx, employeeID, input)
	require.NoError(t, err)

	reviews, err := repo.ListForEmployee(ctx, employeeID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 4.5, reviews[0].OverallRating)
	assert.Equal(t, "positive", reviews[0].Extra["peer_feedback"])
}

func TestReviewRepository_ListForEmployee_Order(t *testing.T) {
	db := getTestMongo(t)
	if db == nil {
		return
	}
	defer db.Close(context.Background())

	repo := NewReviewRepository(db)
	ctx := context.Background()
	employeeID := int64(900003)

	cleanupReviews(t, db, employeeID)
	defer cleanupReviews(t, db, employeeID)

	for _, date := range []string{"2024-12-31", "2025-06-30", "2025-03-31"} {
		_, err := repo.Create(ctx, employeeID, testReviewInput(date))
		require.NoError(t, err)
	}

	reviews, err := repo.ListForEmployee(ctx, employeeID)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, "2025-06-30", reviews[0].ReviewDate)
	assert.Equal(t, "2025-03-31", reviews[1].ReviewDate)
	assert.Equal(t, "2024-12-31", reviews[2].ReviewDate)
}

func TestReviewRepository_ListForEmployee_Empty(t *testing.T) {
	db := getTestMongo(t)
	if db == nil {
		return
	}
	defer db.Close(context.Background())

	repo := NewReviewRepository(db)
	ctx := context.Background()

	reviews, err := repo.ListForEmployee(ctx, int64(900999))
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestReviewRepository_LegacyDocumentCoercion(t *testing.T) {
	db := getTestMongo(t)
	if db == nil {
		return
	}
	defer db.Close(context.Background())

	repo := NewReviewRepository(db)
	ctx := context.Background()
	employeeID := int64(900004)

	cleanupReviews(t, db, employeeID)
	defer cleanupReviews(t, db, employeeID)

	// Hand-written documents may carry string ratings and scalar
	// strengths; reads coerce rather than fail.
	coll, err := db.Collection(ctx)
	require.NoError(t, err)
	_, err = coll.InsertOne(ctx, bson.M{
		"employee_id":    employeeID,
		"review_date":    "2023-09-30",
		"reviewer_name":  "Legacy Importer",
		"overall_rating": "3.5",
		"strengths":      "adaptability",
	})
	require.NoError(t, err)

	reviews, err := repo.ListForEmployee(ctx, employeeID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 3.5, reviews[0].OverallRating)
	assert.Equal(t, []string{"adaptability"}, reviews[0].Strengths)
	assert.Empty(t, reviews[0].Comments)
}
