package impls

import (
	"context"

	"github.com/atlas-it/atlas-agent/internal/domain"
)

// TicketAPI talks to the remote ticketing backend. Calls are one-shot: no
// method retries on failure.
type TicketAPI interface {
	SubmitTicket(ctx context.Context, ticket domain.TicketSubmission) domain.SubmitResult
	ListTickets(ctx context.Context, email string) domain.TicketListResult
	ResolveEmail(ctx context.Context, lookup domain.EmailLookup) (string, bool)
	Health(ctx context.Context) bool
}
