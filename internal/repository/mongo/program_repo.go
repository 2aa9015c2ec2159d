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

const programCollectionName = "training_programs"

// workoutExerciseDoc is one exercise entry inside an embedded session.
type workoutExerciseDoc struct {
	ExerciseID     string `bson:"exercise_id"`
	Sets           int    `bson:"sets"`
	OrderInSession int    `bson:"order_in_session"`
	Notes          string `bson:"notes,omitempty"`
}

// sessionDoc is a workout session embedded in its program document. The
// program is the aggregate root; sessions never live in their own
// collection.
type sessionDoc struct {
	ID             string               `bson:"_id"`
	Name           string               `bson:"name"`
	DayNumber      int                  `bson:"day_number"`
	OrderInProgram int                  `bson:"order_in_program"`
	Exercises      []workoutExerciseDoc `bson:"exercises"`
	CreatedAt      time.Time            `bson:"created_at"`
	UpdatedAt      time.Time            `bson:"updated_at"`
}

type weeklyStructureDoc struct {
	DaysPerWeek  int      `bson:"days_per_week"`
	SelectedDays []string `bson:"selected_days"`
}

type cyclicStructureDoc struct {
	DaysOn  int `bson:"days_on"`
	DaysOff int `bson:"days_off"`
}

// programDoc is the persistence shape of a domain.TrainingProgram.
type programDoc struct {
	ID              string              `bson:"_id"`
	Name            string              `bson:"name"`
	Description     string              `bson:"description,omitempty"`
	SplitType       string              `bson:"split_type"`
	StructureType   string              `bson:"structure_type"`
	Weekly          *weeklyStructureDoc `bson:"weekly_structure,omitempty"`
	Cyclic          *cyclicStructureDoc `bson:"cyclic_structure,omitempty"`
	Sessions        []sessionDoc        `bson:"sessions"`
	IsTemplate      bool                `bson:"is_template"`
	CreatedByUserID *string             `bson:"created_by_user_id,omitempty"`
	OrganizationID  *string             `bson:"organization_id,omitempty"`
	DurationWeeks   *int                `bson:"duration_weeks,omitempty"`
	CreatedAt       time.Time           `bson:"created_at"`
	UpdatedAt       time.Time           `bson:"updated_at"`
}

func programToDoc(p *domain.TrainingProgram) programDoc {
	doc := programDoc{
		ID:              p.ID().String(),
		Name:            p.Name(),
		Description:     p.Description(),
		SplitType:       string(p.SplitType()),
		StructureType:   string(p.StructureType()),
		IsTemplate:      p.IsTemplate(),
		CreatedByUserID: uuidPtrToString(p.CreatedByUserID()),
		OrganizationID:  uuidPtrToString(p.OrganizationID()),
		DurationWeeks:   p.DurationWeeks(),
		CreatedAt:       p.CreatedAt(),
		UpdatedAt:       p.UpdatedAt(),
	}
	if w := p.WeeklyStructure(); w != nil {
		days := make([]string, 0, len(w.SelectedDays()))
		for _, d := range w.SelectedDays() {
			days = append(days, string(d))
		}
		doc.Weekly = &weeklyStructureDoc{DaysPerWeek: w.DaysPerWeek(), SelectedDays: days}
	}
	if c := p.CyclicStructure(); c != nil {
		doc.Cyclic = &cyclicStructureDoc{DaysOn: c.DaysOn(), DaysOff: c.DaysOff()}
	}
	for _, s := range p.Sessions() {
		doc.Sessions = append(doc.Sessions, sessionToDoc(s))
	}
	return doc
}

func sessionToDoc(s *domain.WorkoutSession) sessionDoc {
	doc := sessionDoc{
		ID:             s.ID().String(),
		Name:           s.Name(),
		DayNumber:      s.DayNumber(),
		OrderInProgram: s.OrderInProgram(),
		CreatedAt:      s.CreatedAt(),
		UpdatedAt:      s.UpdatedAt(),
	}
	for _, ex := range s.Exercises() {
		doc.Exercises = append(doc.Exercises, workoutExerciseDoc{
			ExerciseID:     ex.ExerciseID().String(),
			Sets:           ex.Sets(),
			OrderInSession: ex.OrderInSession(),
			Notes:          ex.Notes(),
		})
	}
	return doc
}

func docToProgram(doc programDoc) (*domain.TrainingProgram, error) {
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

	cfg := domain.ProgramConfig{
		Name:            doc.Name,
		Description:     doc.Description,
		SplitType:       domain.SplitType(doc.SplitType),
		StructureType:   domain.StructureType(doc.StructureType),
		IsTemplate:      doc.IsTemplate,
		CreatedByUserID: createdBy,
		OrganizationID:  orgID,
		DurationWeeks:   doc.DurationWeeks,
	}
	if doc.Weekly != nil {
		days := make([]domain.WeekDay, 0, len(doc.Weekly.SelectedDays))
		for _, d := range doc.Weekly.SelectedDays {
			days = append(days, domain.WeekDay(d))
		}
		weekly, err := domain.NewWeeklyStructure(doc.Weekly.DaysPerWeek, days)
		if err != nil {
			return nil, err
		}
		cfg.Weekly = &weekly
	}
	if doc.Cyclic != nil {
		cyclic, err := domain.NewCyclicStructure(doc.Cyclic.DaysOn, doc.Cyclic.DaysOff)
		if err != nil {
			return nil, err
		}
		cfg.Cyclic = &cyclic
	}
	for _, sd := range doc.Sessions {
		session, err := docToSession(id, sd)
		if err != nil {
			return nil, err
		}
		cfg.Sessions = append(cfg.Sessions, session)
	}

	return domain.ReconstructTrainingProgram(id, cfg, doc.CreatedAt, doc.UpdatedAt)
}

func docToSession(programID uuid.UUID, doc sessionDoc) (*domain.WorkoutSession, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, err
	}
	exercises := make([]domain.WorkoutExercise, 0, len(doc.Exercises))
	for _, ed := range doc.Exercises {
		exerciseID, err := uuid.Parse(ed.ExerciseID)
		if err != nil {
			return nil, err
		}
		we, err := domain.NewWorkoutExercise(exerciseID, ed.Sets, ed.OrderInSession, ed.Notes)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, we)
	}
	return domain.ReconstructWorkoutSession(
		id, programID, doc.Name, doc.DayNumber, doc.OrderInProgram,
		exercises, doc.CreatedAt, doc.UpdatedAt,
	)
}

// mongoProgramRepository implements repository.ProgramRepository
type mongoProgramRepository struct {
	collection *mongo.Collection
}

// NewMongoProgramRepository creates a new TrainingProgram repository backed
// by MongoDB.
func NewMongoProgramRepository(db *mongo.Database) repository.ProgramRepository {
	return &mongoProgramRepository{
		collection: db.Collection(programCollectionName),
	}
}

// Create inserts a new program, sessions included.
func (r *mongoProgramRepository) Create(ctx context.Context, program *domain.TrainingProgram) error {
	_, err := r.collection.InsertOne(ctx, programToDoc(program))
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	return err
}

// GetByID retrieves a program by its ID.
func (r *mongoProgramRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TrainingProgram, error) {
	var doc programDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return docToProgram(doc)
}

// List retrieves programs matching the filter, newest first.
func (r *mongoProgramRepository) List(ctx context.Context, filter repository.ProgramFilter) ([]*domain.TrainingProgram, error) {
	query := bson.M{}
	if filter.TemplatesOnly {
		query["is_template"] = true
	} else if filter.OrganizationID != nil {
		query["organization_id"] = filter.OrganizationID.String()
	}
	if filter.SplitType != nil {
		query["split_type"] = string(*filter.SplitType)
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domain.TrainingProgram
	for cursor.Next(ctx) {
		var doc programDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		program, err := docToProgram(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, program)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the whole program document. The aggregate is small
// enough that replacing beats field-level patching.
func (r *mongoProgramRepository) Update(ctx context.Context, program *domain.TrainingProgram) error {
	doc := programToDoc(program)
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a program and its embedded sessions.
func (r *mongoProgramRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureProgramIndexes creates necessary indexes for the programs collection.
func EnsureProgramIndexes(ctx context.Context, db *mongo.Database) {
	collection := db.Collection(programCollectionName)
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "organization_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "is_template", Value: 1}},
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
