package domain

// Rate bounds for a single vote. A nil rate means the ballot entry was
// issued but not cast yet.
const (
	MinRate = 0
	MaxRate = 2
)

// Vote is one attendee's rating of a single accepted presentation, tied to
// an anonymous voting token rather than a user account.
type Vote struct {
	ID             string `json:"id" bson:"_id,omitempty"`
	Token          string `json:"token" bson:"token"`
	Order          int    `json:"order" bson:"vote_order"`
	PresentationID string `json:"presentation_id" bson:"presentation_id"`
	Rate           *int   `json:"rate,omitempty" bson:"rate,omitempty"`
}

// ValidRate reports whether r is inside the allowed rating range.
func ValidRate(r int) bool {
	return r >= MinRate && r <= MaxRate
}

// RatingSummary aggregates cast votes for one presentation.
type RatingSummary struct {
	PresentationID string  `json:"presentation_id" bson:"_id"`
	Votes          int     `json:"votes" bson:"votes"`
	AverageRate    float64 `json:"average_rate" bson:"average_rate"`
}
