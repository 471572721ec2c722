package domain

import "time"

// PresentationStatus represents the review state of a submission.
type PresentationStatus string

const (
	StatusNone      PresentationStatus = "none"
	StatusSubmitted PresentationStatus = "submitted"
	StatusAccepted  PresentationStatus = "accepted"
	StatusRejected  PresentationStatus = "rejected"
)

// Valid reports whether s is one of the known review states.
func (s PresentationStatus) Valid() bool {
	switch s {
	case StatusNone, StatusSubmitted, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Presentation is a talk submitted by a speaker. Status is a privileged
// field: the submitter can never change it through the edit path, only the
// review process can.
type Presentation struct {
	ID               string             `json:"id" bson:"_id,omitempty"`
	Title            string             `json:"title" bson:"title"`
	ShortDescription string             `json:"short_description,omitempty" bson:"short_description,omitempty"`
	Description      string             `json:"description,omitempty" bson:"description,omitempty"`
	Language         string             `json:"language,omitempty" bson:"language,omitempty"`
	Level            string             `json:"level,omitempty" bson:"level,omitempty"`
	Status           PresentationStatus `json:"status" bson:"status"`
	SpeakerID        string             `json:"speaker_id" bson:"speaker_id"`
	CoSpeakerID      string             `json:"co_speaker_id,omitempty" bson:"co_speaker_id,omitempty"`
	Tags             []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}
