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

const collectionVouchers = "vouchers"

type VoucherRepository struct {
	col *mongo.Collection
}

func NewVoucherRepository(db *mongo.Database) *VoucherRepository {
	return &VoucherRepository{col: db.Collection(collectionVouchers)}
}

type mongoVoucher struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Code      string             `bson:"code"`
	Buyer     string             `bson:"buyer,omitempty"`
	Type      string             `bson:"type"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (m mongoVoucher) toDomain() *domain.Voucher {
	return &domain.Voucher{
		ID:        m.ID.Hex(),
		Code:      m.Code,
		Buyer:     m.Buyer,
		Type:      m.Type,
		CreatedAt: m.CreatedAt,
	}
}

func (r *VoucherRepository) Create(ctx context.Context, v *domain.Voucher) (*domain.Voucher, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoVoucher{
		Code:      v.Code,
		Buyer:     v.Buyer,
		Type:      v.Type,
		CreatedAt: v.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert voucher: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *VoucherRepository) FindByID(ctx context.Context, id string) (*domain.Voucher, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrVoucherNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *VoucherRepository) FindByCode(ctx context.Context, code string) (*domain.Voucher, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *VoucherRepository) findOne(ctx context.Context, filter bson.M) (*domain.Voucher, error) {
	var m mongoVoucher
	if err := r.col.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVoucherNotFound
		}
		return nil, fmt.Errorf("find voucher: %w", err)
	}
	return m.toDomain(), nil
}

func (r *VoucherRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
