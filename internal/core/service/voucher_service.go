package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/confiteria/conference-system/internal/core/domain"
	"github.com/confiteria/conference-system/internal/core/ports"
	"github.com/confiteria/conference-system/internal/core/security"
)

type VoucherService struct {
	vouchers ports.VoucherRepository
	logger   zerolog.Logger
}

func NewVoucherService(vouchers ports.VoucherRepository, logger zerolog.Logger) *VoucherService {
	return &VoucherService{vouchers: vouchers, logger: logger}
}

// Generate mints a voucher with a random code.
func (s *VoucherService) Generate(ctx context.Context, actor security.Actor, buyer, voucherType string) (*domain.Voucher, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if voucherType == "" {
		voucherType = domain.VoucherTypeRegular
	}

	voucher, err := s.vouchers.Create(ctx, &domain.Voucher{
		Code:      uuid.NewString(),
		Buyer:     buyer,
		Type:      voucherType,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create voucher")
		return nil, err
	}

	s.logger.Info().Str("voucher_id", voucher.ID).Str("type", voucherType).Msg("voucher generated")
	return voucher, nil
}

func (s *VoucherService) Get(ctx context.Context, actor security.Actor, id string) (*domain.Voucher, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.vouchers.FindByID(ctx, id)
}

// Validate resolves a voucher code, typically during registration.
func (s *VoucherService) Validate(ctx context.Context, code string) (*domain.Voucher, error) {
	return s.vouchers.FindByCode(ctx, code)
}
