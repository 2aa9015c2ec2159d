package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"liftforge/hypertrophy-app/internal/domain"
	"liftforge/hypertrophy-app/internal/repository"
)

const organizationCollectionName = "organizations"

// organizationDoc is the persistence shape of a domain.Organization.
type organizationDoc struct {
	ID                 string    `bson:"_id"`
	Name               string    `bson:"name"`
	SubscriptionTier   string    `bson:"subscription_tier"`
	SubscriptionStatus string    `bson:"subscription_status"`
	CreatedAt          time.Time `bson:"created_at"`
	UpdatedAt          time.Time `bson:"updated_at"`
}

func organizationToDoc(org *domain.Organization) organizationDoc {
	return organizationDoc{
		ID:                 org.ID().String(),
		Name:               org.Name(),
		SubscriptionTier:   string(org.SubscriptionTier()),
		SubscriptionStatus: string(org.SubscriptionStatus()),
		CreatedAt:          org.CreatedAt(),
		UpdatedAt:          org.UpdatedAt(),
	}
}

func docToOrganization(doc organizationDoc) (*domain.Organization, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, err
	}
	return domain.ReconstructOrganization(
		id,
		doc.Name,
		domain.SubscriptionTier(doc.SubscriptionTier),
		domain.SubscriptionStatus(doc.SubscriptionStatus),
		doc.CreatedAt,
		doc.UpdatedAt,
	)
}

// mongoOrganizationRepository implements repository.OrganizationRepository
type mongoOrganizationRepository struct {
	collection *mongo.Collection
}

// NewMongoOrganizationRepository creates a new Organization repository
// backed by MongoDB.
func NewMongoOrganizationRepository(db *mongo.Database) repository.OrganizationRepository {
	return &mongoOrganizationRepository{
		collection: db.Collection(organizationCollectionName),
	}
}

// Create inserts a new organization.
func (r *mongoOrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	_, err := r.collection.InsertOne(ctx, organizationToDoc(org))
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	return err
}

// GetByID retrieves an organization by its ID.
func (r *mongoOrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	var doc organizationDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return docToOrganization(doc)
}

// Update replaces the stored organization document.
func (r *mongoOrganizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	doc := organizationToDoc(org)
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
