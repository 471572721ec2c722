package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/confiteria/conference-system/internal/core/domain"
)

const collectionVotes = "votes"

// VoteRepository stores ballots under service-assigned string IDs, so no
// ObjectID mapping is needed here.
type VoteRepository struct {
	col *mongo.Collection
}

func NewVoteRepository(db *mongo.Database) *VoteRepository {
	return &VoteRepository{col: db.Collection(collectionVotes)}
}

func (r *VoteRepository) CreateBatch(ctx context.Context, votes []*domain.Vote) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]interface{}, 0, len(votes))
	for _, v := range votes {
		docs = append(docs, v)
	}

	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert votes: %w", err)
	}
	return nil
}

func (r *VoteRepository) FindByID(ctx context.Context, id string) (*domain.Vote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v domain.Vote
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVoteNotFound
		}
		return nil, fmt.Errorf("find vote: %w", err)
	}
	return &v, nil
}

func (r *VoteRepository) FindByToken(ctx context.Context, token string) ([]*domain.Vote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "vote_order", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"token": token}, opts)
	if err != nil {
		return nil, fmt.Errorf("find votes: %w", err)
	}
	defer cur.Close(ctx)

	var votes []*domain.Vote
	if err := cur.All(ctx, &votes); err != nil {
		return nil, fmt.Errorf("decode votes: %w", err)
	}
	return votes, nil
}

func (r *VoteRepository) SetRate(ctx context.Context, id string, rate int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"rate": rate}})
	if err != nil {
		return fmt.Errorf("set rate: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVoteNotFound
	}
	return nil
}

// Summary averages cast rates per presentation; votes without a rate are
// excluded from the aggregation.
func (r *VoteRepository) Summary(ctx context.Context) ([]domain.RatingSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"rate": bson.M{"$exists": true}}}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$presentation_id",
			"votes":        bson.M{"$sum": 1},
			"average_rate": bson.M{"$avg": "$rate"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "average_rate", Value: -1}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate votes: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.RatingSummary
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode vote summary: %w", err)
	}
	return out, nil
}

func (r *VoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}},
		{Keys: bson.D{{Key: "presentation_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
