package ticket

import (
	"context"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/atlas-it/atlas-agent/internal/domain"
	"github.com/atlas-it/atlas-agent/internal/impls"
)

// Service validates support requests and hands them to the ticket API.
type Service struct {
	api           impls.TicketAPI
	clientVersion string
	validate      *validator.Validate
	logger        *slog.Logger

	inFlight sync.Mutex
}

func NewService(api impls.TicketAPI, clientVersion string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		api:           api,
		clientVersion: clientVersion,
		validate:      newValidator(),
		logger:        logger,
	}
}

// Submit sends one ticket built from form and dc. Only one submission runs
// at a time; a concurrent call fails fast with domain.ErrSubmitInFlight.
// The error covers local failures only; the remote outcome is in the
// result.
func (s *Service) Submit(ctx context.Context, form Form, dc domain.DeviceContext) (domain.SubmitResult, error) {
	if !s.inFlight.TryLock() {
		return domain.SubmitResult{}, domain.ErrSubmitInFlight
	}
	defer s.inFlight.Unlock()

	form = form.normalized()
	if err := s.validate.Struct(form); err != nil {
		return domain.SubmitResult{}, validationError(err)
	}

	if form.Email == "" && dc.Domain == nil {
		if email, ok := s.api.ResolveEmail(ctx, domain.EmailLookup{NinjaDeviceID: dc.NinjaDeviceID, ComputerName: dc.ComputerName}); ok {
			s.logger.Debug("email resolved from device")
			form.Email = email
		}
	}
	if form.Email == "" {
		return domain.SubmitResult{}, domain.ErrValidation{Field: "email", Reason: "is required"}
	}

	res := s.api.SubmitTicket(ctx, s.build(form, dc))
	if res.Success {
		res.ReferenceCode = domain.ReferenceCode(res.TicketID)
		s.logger.Info("ticket submitted", "reference", res.ReferenceCode, "priority", form.Priority)
	}
	return res, nil
}

func (s *Service) build(form Form, dc domain.DeviceContext) domain.TicketSubmission {
	return domain.TicketSubmission{
		Email:         form.Email,
		Title:         form.Title,
		Body:          form.Body,
		Priority:      form.Priority,
		NinjaDeviceID: dc.NinjaDeviceID,
		ComputerName:  dc.ComputerName,
		TeamViewerID:  dc.TeamViewerID,
		WidgetContext: domain.WidgetContext{
			Category:          form.Category,
			Urgency:           form.Urgency,
			ClientVersion:     s.clientVersion,
			OSVersion:         dc.OSVersion,
			OSPlatform:        dc.OSPlatform,
			IPAddress:         dc.IPAddress,
			Domain:            dc.Domain,
			TeamViewerVersion: dc.TeamViewerVersion,
		},
	}
}

// List returns the tickets filed under email.
func (s *Service) List(ctx context.Context, email string) (domain.TicketListResult, error) {
	q := emailQuery{Email: normalizeEmail(email)}
	if err := s.validate.Struct(q); err != nil {
		return domain.TicketListResult{}, validationError(err)
	}
	return s.api.ListTickets(ctx, q.Email), nil
}

// Health reports whether the helpdesk API is reachable.
func (s *Service) Health(ctx context.Context) bool {
	return s.api.Health(ctx)
}
