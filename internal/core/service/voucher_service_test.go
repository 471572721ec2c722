package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/confiteria/conference-system/internal/core/domain"
)

func TestVoucherService_Generate_MintsUniqueCode(t *testing.T) {
	vouchers := newStubVoucherRepo()
	svc := NewVoucherService(vouchers, zerolog.Nop())

	first, err := svc.Generate(context.Background(), admin, "ACME", domain.VoucherTypeSponsor)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := svc.Generate(context.Background(), admin, "", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if first.Code == "" || first.Code == second.Code {
		t.Fatalf("expected distinct non-empty codes, got %q and %q", first.Code, second.Code)
	}
	if first.Type != domain.VoucherTypeSponsor {
		t.Errorf("expected sponsor type, got %q", first.Type)
	}
	if second.Type != domain.VoucherTypeRegular {
		t.Errorf("expected regular default type, got %q", second.Type)
	}
}

func TestVoucherService_Generate_NonAdminForbidden(t *testing.T) {
	vouchers := newStubVoucherRepo()
	svc := NewVoucherService(vouchers, zerolog.Nop())

	_, err := svc.Generate(context.Background(), stranger, "", "")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(vouchers.byCode) != 0 {
		t.Fatalf("store touched on denied generate")
	}
}

func TestVoucherService_Get_AdminOnly(t *testing.T) {
	vouchers := newStubVoucherRepo()
	svc := NewVoucherService(vouchers, zerolog.Nop())

	v, err := svc.Generate(context.Background(), admin, "", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := svc.Get(context.Background(), stranger, v.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	got, err := svc.Get(context.Background(), admin, v.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Code != v.Code {
		t.Fatalf("expected code %q, got %q", v.Code, got.Code)
	}
}

func TestVoucherService_Validate_ResolvesCode(t *testing.T) {
	vouchers := newStubVoucherRepo()
	svc := NewVoucherService(vouchers, zerolog.Nop())

	v, err := svc.Generate(context.Background(), admin, "", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	got, err := svc.Validate(context.Background(), v.Code)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.ID != v.ID {
		t.Fatalf("expected voucher %q, got %q", v.ID, got.ID)
	}

	if _, err := svc.Validate(context.Background(), "nope"); !errors.Is(err, domain.ErrVoucherNotFound) {
		t.Fatalf("expected ErrVoucherNotFound, got %v", err)
	}
}
