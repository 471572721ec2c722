package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/confiteria/conference-system/internal/core/domain"
)

const (
	collectionUsers         = "users"
	collectionPresentations = "presentations"
)

type UserRepository struct {
	col           *mongo.Collection
	presentations *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		col:           db.Collection(collectionUsers),
		presentations: db.Collection(collectionPresentations),
	}
}

// mongoUser keeps the persisted shape independent from the domain type so
// ObjectID handling stays at the store boundary.
type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Origin       string             `bson:"origin,omitempty"`
	SocialID     string             `bson:"social_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email,omitempty"`
	Bio          string             `bson:"bio,omitempty"`
	Photo        string             `bson:"photo,omitempty"`
	Volunteer    bool               `bson:"volunteer"`
	Admin        bool               `bson:"admin"`
	PasswordHash string             `bson:"password_hash,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toMongoUser(u *domain.User) (mongoUser, error) {
	doc := mongoUser{
		Origin:       u.Origin,
		SocialID:     u.SocialID,
		Name:         u.Name,
		Email:        u.Email,
		Bio:          u.Bio,
		Photo:        u.Photo,
		Volunteer:    u.Volunteer,
		Admin:        u.Admin,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.ID != "" {
		oid, err := primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			return doc, fmt.Errorf("invalid user id %q: %w", u.ID, err)
		}
		doc.ID = oid
	}
	return doc, nil
}

func (m mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID.Hex(),
		Origin:       m.Origin,
		SocialID:     m.SocialID,
		Name:         m.Name,
		Email:        m.Email,
		Bio:          m.Bio,
		Photo:        m.Photo,
		Volunteer:    m.Volunteer,
		Admin:        m.Admin,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r *UserRepository) Save(ctx context.Context, u *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toMongoUser(u)
	if err != nil {
		return nil, err
	}

	if doc.ID.IsZero() {
		res, err := r.col.InsertOne(ctx, doc)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ErrDuplicateSocialID
			}
			return nil, fmt.Errorf("insert user: %w", err)
		}
		doc.ID = res.InsertedID.(primitive.ObjectID)
		return doc.toDomain(), nil
	}

	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc); err != nil {
		return nil, fmt.Errorf("replace user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindBySocialID(ctx context.Context, socialID string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.findOne(ctx, bson.M{"social_id": socialID})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var m mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return m.toDomain(), nil
}

func (r *UserRepository) ExistsBySocialID(ctx context.Context, socialID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"social_id": socialID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

// SetVolunteer flips the volunteer flag in a single atomic update, so
// concurrent admin actions cannot interleave a stale read-modify-write.
func (r *UserRepository) SetVolunteer(ctx context.Context, id string, volunteer bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"volunteer": volunteer, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("set volunteer: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// FindAllAccepted joins accepted presentations with their speakers and
// returns one pair per presentation. The lookup result is decoded into an
// explicit pair here, at the store boundary.
func (r *UserRepository) FindAllAccepted(ctx context.Context) ([]domain.SpeakerPair, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": string(domain.StatusAccepted)}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionUsers,
			"localField":   "speaker_id",
			"foreignField": "_id",
			"as":           "speaker",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionUsers,
			"localField":   "co_speaker_id",
			"foreignField": "_id",
			"as":           "co_speaker",
		}}},
	}

	cur, err := r.presentations.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate accepted speakers: %w", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Speaker   []mongoUser `bson:"speaker"`
		CoSpeaker []mongoUser `bson:"co_speaker"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode accepted speakers: %w", err)
	}

	pairs := make([]domain.SpeakerPair, 0, len(rows))
	for _, row := range rows {
		if len(row.Speaker) == 0 {
			continue
		}
		pair := domain.SpeakerPair{Speaker: *row.Speaker[0].toDomain()}
		if len(row.CoSpeaker) > 0 {
			pair.CoSpeaker = row.CoSpeaker[0].toDomain()
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// EnsureIndexes creates the indexes the user queries rely on. The social id
// index is unique and sparse so locally registered accounts (no social id)
// do not collide.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "origin", Value: 1}, {Key: "social_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
