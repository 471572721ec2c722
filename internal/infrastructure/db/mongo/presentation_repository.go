package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/confiteria/conference-system/internal/core/domain"
)

type PresentationRepository struct {
	col *mongo.Collection
}

func NewPresentationRepository(db *mongo.Database) *PresentationRepository {
	return &PresentationRepository{col: db.Collection(collectionPresentations)}
}

// Speaker references are stored as ObjectIDs so the accepted-speakers
// lookup can join against the users collection.
type mongoPresentation struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty"`
	Title            string              `bson:"title"`
	ShortDescription string              `bson:"short_description,omitempty"`
	Description      string              `bson:"description,omitempty"`
	Language         string              `bson:"language,omitempty"`
	Level            string              `bson:"level,omitempty"`
	Status           string              `bson:"status"`
	SpeakerID        primitive.ObjectID  `bson:"speaker_id"`
	CoSpeakerID      *primitive.ObjectID `bson:"co_speaker_id,omitempty"`
	Tags             []string            `bson:"tags,omitempty"`
	CreatedAt        time.Time           `bson:"created_at"`
	UpdatedAt        time.Time           `bson:"updated_at"`
}

func toMongoPresentation(p *domain.Presentation) (mongoPresentation, error) {
	doc := mongoPresentation{
		Title:            p.Title,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		Language:         p.Language,
		Level:            p.Level,
		Status:           string(p.Status),
		Tags:             p.Tags,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.ID != "" {
		oid, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return doc, fmt.Errorf("invalid presentation id %q: %w", p.ID, err)
		}
		doc.ID = oid
	}
	speaker, err := primitive.ObjectIDFromHex(p.SpeakerID)
	if err != nil {
		return doc, fmt.Errorf("invalid speaker id %q: %w", p.SpeakerID, err)
	}
	doc.SpeakerID = speaker
	if p.CoSpeakerID != "" {
		co, err := primitive.ObjectIDFromHex(p.CoSpeakerID)
		if err != nil {
			return doc, fmt.Errorf("invalid co-speaker id %q: %w", p.CoSpeakerID, err)
		}
		doc.CoSpeakerID = &co
	}
	return doc, nil
}

func (m mongoPresentation) toDomain() *domain.Presentation {
	p := &domain.Presentation{
		ID:               m.ID.Hex(),
		Title:            m.Title,
		ShortDescription: m.ShortDescription,
		Description:      m.Description,
		Language:         m.Language,
		Level:            m.Level,
		Status:           domain.PresentationStatus(m.Status),
		SpeakerID:        m.SpeakerID.Hex(),
		Tags:             m.Tags,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.CoSpeakerID != nil {
		p.CoSpeakerID = m.CoSpeakerID.Hex()
	}
	return p
}

func (r *PresentationRepository) Save(ctx context.Context, p *domain.Presentation) (*domain.Presentation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toMongoPresentation(p)
	if err != nil {
		return nil, err
	}

	if doc.ID.IsZero() {
		res, err := r.col.InsertOne(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("insert presentation: %w", err)
		}
		doc.ID = res.InsertedID.(primitive.ObjectID)
		return doc.toDomain(), nil
	}

	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc); err != nil {
		return nil, fmt.Errorf("replace presentation: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PresentationRepository) FindByID(ctx context.Context, id string) (*domain.Presentation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPresentationNotFound
	}

	var m mongoPresentation
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPresentationNotFound
		}
		return nil, fmt.Errorf("find presentation: %w", err)
	}
	return m.toDomain(), nil
}

func (r *PresentationRepository) FindBySpeaker(ctx context.Context, speakerID string) ([]*domain.Presentation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(speakerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	filter := bson.M{"$or": bson.A{
		bson.M{"speaker_id": oid},
		bson.M{"co_speaker_id": oid},
	}}
	return r.findAll(ctx, filter)
}

func (r *PresentationRepository) FindAccepted(ctx context.Context) ([]*domain.Presentation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.findAll(ctx, bson.M{"status": string(domain.StatusAccepted)})
}

func (r *PresentationRepository) findAll(ctx context.Context, filter bson.M) ([]*domain.Presentation, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find presentations: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoPresentation
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode presentations: %w", err)
	}

	out := make([]*domain.Presentation, 0, len(docs))
	for _, m := range docs {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *PresentationRepository) UpdateStatus(ctx context.Context, id string, status domain.PresentationStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPresentationNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("update presentation status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPresentationNotFound
	}
	return nil
}

func (r *PresentationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "speaker_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
