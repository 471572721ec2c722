package domain

import "time"

// Voucher types mirror how the registration credential was obtained.
const (
	VoucherTypeRegular = "regular"
	VoucherTypeSponsor = "sponsor"
	VoucherTypeSpeaker = "speaker"
)

// Voucher is a redeemable registration credential. Generated by an admin (or
// a sponsor batch), then bound to at most one participation record.
type Voucher struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Code      string    `json:"code" bson:"code"`
	Buyer     string    `json:"buyer,omitempty" bson:"buyer,omitempty"`
	Type      string    `json:"type" bson:"type"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
