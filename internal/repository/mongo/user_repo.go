package mongo

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"liftforge/hypertrophy-app/internal/domain"
	"liftforge/hypertrophy-app/internal/repository"
)

const userCollectionName = "users"

// userDoc is the persistence shape of a domain.User.
type userDoc struct {
	ID              string    `bson:"_id"`
	Email           string    `bson:"email"`
	HashedPassword  string    `bson:"hashed_password"`
	FullName        string    `bson:"full_name"`
	OrganizationID  string    `bson:"organization_id"`
	Role            string    `bson:"role"`
	IsActive        bool      `bson:"is_active"`
	IsVerified      bool      `bson:"is_verified"`
	ProfileImageURL string    `bson:"profile_image_url,omitempty"`
	CreatedAt       time.Time `bson:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

func userToDoc(u *domain.User) userDoc {
	return userDoc{
		ID:              u.ID().String(),
		Email:           u.Email(),
		HashedPassword:  u.HashedPassword(),
		FullName:        u.FullName(),
		OrganizationID:  u.OrganizationID().String(),
		Role:            string(u.Role()),
		IsActive:        u.IsActive(),
		IsVerified:      u.IsVerified(),
		ProfileImageURL: u.ProfileImageURL(),
		CreatedAt:       u.CreatedAt(),
		UpdatedAt:       u.UpdatedAt(),
	}
}

func docToUser(doc userDoc) (*domain.User, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, err
	}
	orgID, err := uuid.Parse(doc.OrganizationID)
	if err != nil {
		return nil, err
	}
	return domain.ReconstructUser(
		id,
		doc.Email,
		doc.HashedPassword,
		doc.FullName,
		orgID,
		domain.Role(doc.Role),
		doc.IsActive,
		doc.IsVerified,
		doc.ProfileImageURL,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
}

// mongoUserRepository implements repository.UserRepository
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new User repository backed by MongoDB.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// Create inserts a new user. The unique email index turns races into
// ErrDuplicate.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.collection.InsertOne(ctx, userToDoc(user))
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	return err
}

// GetByEmail retrieves a user by email, matching case-insensitively.
func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc userDoc
	err := r.collection.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return docToUser(doc)
}

// GetByID retrieves a user by their ID.
func (r *mongoUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var doc userDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return docToUser(doc)
}

// GetByOrganizationID retrieves every member of an organization.
func (r *mongoUserRepository) GetByOrganizationID(ctx context.Context, orgID uuid.UUID) ([]*domain.User, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "full_name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"organization_id": orgID.String()}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domain.User
	for cursor.Next(ctx) {
		var doc userDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		user, err := docToUser(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the stored user document.
func (r *mongoUserRepository) Update(ctx context.Context, user *domain.User) error {
	doc := userToDoc(user)
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureUserIndexes creates necessary indexes for the users collection.
func EnsureUserIndexes(ctx context.Context, db *mongo.Database) {
	collection := db.Collection(userCollectionName)
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "organization_id", Value: 1}},
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
