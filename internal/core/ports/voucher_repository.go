package ports

import (
	"context"

	"github.com/confiteria/conference-system/internal/core/domain"
)

// VoucherRepository defines persistence for registration vouchers.
type VoucherRepository interface {
	Create(ctx context.Context, v *domain.Voucher) (*domain.Voucher, error)
	FindByID(ctx context.Context, id string) (*domain.Voucher, error)
	FindByCode(ctx context.Context, code string) (*domain.Voucher, error)
}
