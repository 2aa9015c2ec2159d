package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"liftforge/hypertrophy-app/internal/domain"
	"liftforge/hypertrophy-app/internal/repository"
)

const exerciseCollectionName = "exercises"

// exerciseDoc is the persistence shape of a domain.Exercise. UUIDs are
// stored as their canonical string form; contribution values as raw floats.
type exerciseDoc struct {
	ID                  string             `bson:"_id"`
	Name                string             `bson:"name"`
	Equipment           string             `bson:"equipment"`
	MuscleContributions map[string]float64 `bson:"muscle_contributions"`
	Description         string             `bson:"description,omitempty"`
	ImageURL            string             `bson:"image_url,omitempty"`
	IsGlobal            bool               `bson:"is_global"`
	CreatedByUserID     *string            `bson:"created_by_user_id,omitempty"`
	OrganizationID      *string            `bson:"organization_id,omitempty"`
	CreatedAt           time.Time          `bson:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at"`
}

func exerciseToDoc(ex *domain.Exercise) exerciseDoc {
	contributions := make(map[string]float64)
	for muscle, c := range ex.MuscleContributions() {
		contributions[string(muscle)] = c.Value()
	}
	return exerciseDoc{
		ID:                  ex.ID().String(),
		Name:                ex.Name(),
		Equipment:           string(ex.Equipment()),
		MuscleContributions: contributions,
		Description:         ex.Description(),
		ImageURL:            ex.ImageURL(),
		IsGlobal:            ex.IsGlobal(),
		CreatedByUserID:     uuidPtrToString(ex.CreatedByUserID()),
		OrganizationID:      uuidPtrToString(ex.OrganizationID()),
		CreatedAt:           ex.CreatedAt(),
		UpdatedAt:           ex.UpdatedAt(),
	}
}

func docToExercise(doc exerciseDoc) (*domain.Exercise, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, err
	}
	createdBy, err := stringPtrToUUID(doc.CreatedByUserID)
	if err != nil {
		return nil, err
	}
	orgID, err := stringPtrToUUID(doc.OrganizationID)
	if err != nil {
		return nil, err
	}
	contributions := make(map[domain.MuscleGroup]domain.VolumeContribution, len(doc.MuscleContributions))
	for muscle, v := range doc.MuscleContributions {
		c, err := domain.ContributionFromFloat(v)
		if err != nil {
			return nil, err
		}
		contributions[domain.MuscleGroup(muscle)] = c
	}
	return domain.ReconstructExercise(
		id,
		doc.Name,
		domain.Equipment(doc.Equipment),
		contributions,
		doc.Description,
		doc.ImageURL,
		doc.IsGlobal,
		createdBy,
		orgID,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
}

func uuidPtrToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func stringPtrToUUID(s *string) (*uuid.UUID, error) {
	if s == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// Create inserts a new exercise into the database.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) error {
	_, err := r.collection.InsertOne(ctx, exerciseToDoc(exercise))
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	return err
}

// GetByID retrieves an exercise by its ID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error) {
	var doc exerciseDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return docToExercise(doc)
}

// GetByIDs retrieves the exercises for the given IDs. Missing IDs are
// silently skipped; callers that care about completeness compare lengths.
func (r *mongoExerciseRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Exercise, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": idStrings}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeExercises(ctx, cursor)
}

// List retrieves exercises matching the filter, sorted by name. An
// organization filter includes the global library alongside the org's own
// exercises.
func (r *mongoExerciseRepository) List(ctx context.Context, filter repository.ExerciseFilter) ([]*domain.Exercise, error) {
	query := bson.M{}
	switch {
	case filter.GlobalOnly:
		query["is_global"] = true
	case filter.OrganizationID != nil:
		query["$or"] = bson.A{
			bson.M{"is_global": true},
			bson.M{"organization_id": filter.OrganizationID.String()},
		}
	}
	if filter.Equipment != nil {
		query["equipment"] = string(*filter.Equipment)
	}
	if filter.Muscle != nil {
		query["muscle_contributions."+string(*filter.Muscle)] = bson.M{"$exists": true}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeExercises(ctx, cursor)
}

func decodeExercises(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Exercise, error) {
	var out []*domain.Exercise
	for cursor.Next(ctx) {
		var doc exerciseDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ex, err := docToExercise(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, ex)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the stored exercise document.
func (r *mongoExerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	doc := exerciseToDoc(exercise)
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes an exercise. Ownership checks live in the service layer.
func (r *mongoExerciseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, db *mongo.Database) {
	collection := db.Collection(exerciseCollectionName)
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "organization_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "is_global", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
			Options: options.Index().SetName("exercise_text_search"),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
