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

const collectionParticipation = "participation"

type ParticipationRepository struct {
	col *mongo.Collection
}

func NewParticipationRepository(db *mongo.Database) *ParticipationRepository {
	return &ParticipationRepository{col: db.Collection(collectionParticipation)}
}

type mongoParticipation struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty"`
	UserID           primitive.ObjectID  `bson:"user_id"`
	VoucherID        *primitive.ObjectID `bson:"voucher_id,omitempty"`
	RegistrationDate time.Time           `bson:"registration_date"`
	ArrivalDate      *time.Time          `bson:"arrival_date,omitempty"`
	TicketSendDate   *time.Time          `bson:"ticket_send_date,omitempty"`
}

func toMongoParticipation(p *domain.ParticipationData) (mongoParticipation, error) {
	doc := mongoParticipation{
		RegistrationDate: p.RegistrationDate,
		ArrivalDate:      p.ArrivalDate,
		TicketSendDate:   p.TicketSendDate,
	}
	user, err := primitive.ObjectIDFromHex(p.UserID)
	if err != nil {
		return doc, fmt.Errorf("invalid user id %q: %w", p.UserID, err)
	}
	doc.UserID = user
	if p.VoucherID != "" {
		voucher, err := primitive.ObjectIDFromHex(p.VoucherID)
		if err != nil {
			return doc, fmt.Errorf("invalid voucher id %q: %w", p.VoucherID, err)
		}
		doc.VoucherID = &voucher
	}
	return doc, nil
}

func (m mongoParticipation) toDomain() *domain.ParticipationData {
	p := &domain.ParticipationData{
		ID:               m.ID.Hex(),
		UserID:           m.UserID.Hex(),
		RegistrationDate: m.RegistrationDate,
		ArrivalDate:      m.ArrivalDate,
		TicketSendDate:   m.TicketSendDate,
	}
	if m.VoucherID != nil {
		p.VoucherID = m.VoucherID.Hex()
	}
	return p
}

func (r *ParticipationRepository) Create(ctx context.Context, p *domain.ParticipationData) (*domain.ParticipationData, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toMongoParticipation(p)
	if err != nil {
		return nil, err
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("insert participation: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *ParticipationRepository) FindByID(ctx context.Context, id string) (*domain.ParticipationData, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrParticipationNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ParticipationRepository) FindByUserID(ctx context.Context, userID string) (*domain.ParticipationData, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrParticipationNotFound
	}
	return r.findOne(ctx, bson.M{"user_id": oid})
}

func (r *ParticipationRepository) FindByVoucherID(ctx context.Context, voucherID string) (*domain.ParticipationData, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(voucherID)
	if err != nil {
		return nil, domain.ErrParticipationNotFound
	}
	return r.findOne(ctx, bson.M{"voucher_id": oid})
}

func (r *ParticipationRepository) findOne(ctx context.Context, filter bson.M) (*domain.ParticipationData, error) {
	var m mongoParticipation
	if err := r.col.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrParticipationNotFound
		}
		return nil, fmt.Errorf("find participation: %w", err)
	}
	return m.toDomain(), nil
}

// SetArrival stamps the check-in time only when no arrival date is present,
// so a repeated badge scan keeps the original timestamp. Always returns the
// post-update record.
func (r *ParticipationRepository) SetArrival(ctx context.Context, id string, at time.Time) (*domain.ParticipationData, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrParticipationNotFound
	}

	_, err = r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "arrival_date": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"arrival_date": at.UTC()}},
	)
	if err != nil {
		return nil, fmt.Errorf("set arrival: %w", err)
	}

	return r.findOne(ctx, bson.M{"_id": oid})
}

// StampTicketSent sets the dispatch timestamp in one guarded update: the
// filter requires a bound voucher and no prior send date, which makes the
// stamp a single atomic transition even under concurrent dispatch runs.
func (r *ParticipationRepository) StampTicketSent(ctx context.Context, id string, at time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, domain.ErrParticipationNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{
			"_id":              oid,
			"voucher_id":       bson.M{"$exists": true},
			"ticket_send_date": bson.M{"$exists": false},
		},
		bson.M{"$set": bson.M{"ticket_send_date": at.UTC()}},
	)
	if err != nil {
		return false, fmt.Errorf("stamp ticket sent: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

// ListParticipants joins the full participation population with user
// documents. Eligibility evaluation happens in the domain layer on the
// returned snapshot.
func (r *ParticipationRepository) ListParticipants(ctx context.Context) ([]domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionUsers,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: "$user"}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate participants: %w", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		mongoParticipation `bson:",inline"`
		User               mongoUser `bson:"user"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode participants: %w", err)
	}

	out := make([]domain.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Participant{
			User:          *row.User.toDomain(),
			Participation: *row.mongoParticipation.toDomain(),
		})
	}
	return out, nil
}

func (r *ParticipationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "voucher_id", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
