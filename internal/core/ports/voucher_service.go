package ports

import (
	"context"

	"github.com/confiteria/conference-system/internal/core/domain"
	"github.com/confiteria/conference-system/internal/core/security"
)

// VoucherService defines use-case operations on registration vouchers.
type VoucherService interface {
	// Generate mints a new voucher. Admin-gated.
	Generate(ctx context.Context, actor security.Actor, buyer, voucherType string) (*domain.Voucher, error)
	Get(ctx context.Context, actor security.Actor, id string) (*domain.Voucher, error)
	// Validate resolves a voucher code to the voucher it names.
	Validate(ctx context.Context, code string) (*domain.Voucher, error)
}
