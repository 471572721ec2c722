package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/confiteria/conference-system/internal/core/domain"
)

// LogNotifier records ticket deliveries in the structured log instead of
// talking to a mail gateway. It stands in until the outbound mail
// integration lands; the dispatch pipeline treats it like any other
// notifier.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier creates a LogNotifier writing to the given logger.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Send logs the ticket delivery for the participant.
func (n *LogNotifier) Send(ctx context.Context, user domain.User, participationID string) error {
	n.log.Info().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Str("participation_id", participationID).
		Msg("ticket sent")
	return nil
}
