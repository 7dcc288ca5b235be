package atlas

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/atlas-it/atlas-agent/internal/domain"
	"github.com/atlas-it/atlas-agent/internal/impls"
)

const (
	applicationJSON = "application/json"
	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 1 << 20

	// ConnectionErrorMessage is reported when no HTTP response was received.
	ConnectionErrorMessage = "Unable to reach the support server. Check your connection and try again."
	SubmitFailedMessage    = "Ticket submission failed. Please try again."
	ListFailedMessage      = "Could not load tickets. Please try again."
)

var _ impls.TicketAPI = (*Client)(nil)

type Options struct {
	// BaseURL is the API root, e.g. https://helpdesk.atlas-it.com/api.
	BaseURL       string
	Timeout       time.Duration
	HealthTimeout time.Duration
	// Version is reported in the User-Agent header.
	Version string
}

// Client is a one-shot HTTP client for the helpdesk API. Failed calls are
// never retried.
type Client struct {
	baseURL       string
	healthURL     string
	userAgent     string
	healthTimeout time.Duration
	http          *retryablehttp.Client
	logger        *slog.Logger
}

func NewClient(opts Options, logger *slog.Logger) *Client {
	hc := retryablehttp.NewClient()
	hc.RetryMax = 0
	hc.Logger = nil
	hc.HTTPClient.Timeout = opts.Timeout
	// Hand every response back to the caller, whatever its status.
	hc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	if logger == nil {
		logger = slog.Default()
	}

	base := strings.TrimRight(opts.BaseURL, "/")
	healthTimeout := opts.HealthTimeout
	if healthTimeout <= 0 {
		healthTimeout = 5 * time.Second
	}
	return &Client{
		baseURL:       base,
		healthURL:     HealthURL(base),
		userAgent:     "atlas-agent/" + opts.Version,
		healthTimeout: healthTimeout,
		http:          hc,
		logger:        logger,
	}
}

// HealthURL strips a trailing /api segment from base and appends /health.
func HealthURL(base string) string {
	base = strings.TrimRight(base, "/")
	base = strings.TrimSuffix(base, "/api")
	return base + "/health"
}

type submitResponse struct {
	ID         string             `json:"id"`
	TicketID   string             `json:"ticketId"`
	Enrichment *domain.Enrichment `json:"enrichment"`
}

func (c *Client) SubmitTicket(ctx context.Context, ticket domain.TicketSubmission) domain.SubmitResult {
	status, body, err := c.do(ctx, http.MethodPost, c.baseURL+"/tickets", ticket)
	if err != nil {
		c.logger.Warn("ticket submission failed", "error", err)
		return domain.SubmitResult{Error: ConnectionErrorMessage}
	}
	if !success(status) {
		msg := serverMessage(body, SubmitFailedMessage)
		c.logger.Warn("ticket rejected", "status", status, "message", msg)
		return domain.SubmitResult{Error: msg}
	}

	var resp submitResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Warn("unreadable submission response", "status", status, "error", err)
	}
	id := resp.TicketID
	if id == "" {
		id = resp.ID
	}
	c.logger.Info("ticket submitted", "ticket_id", id)
	return domain.SubmitResult{Success: true, TicketID: id, Enrichment: resp.Enrichment}
}

func (c *Client) ListTickets(ctx context.Context, email string) domain.TicketListResult {
	u := c.baseURL + "/tickets?" + url.Values{"email": {email}}.Encode()
	status, body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		c.logger.Warn("ticket list failed", "error", err)
		return domain.TicketListResult{Error: ConnectionErrorMessage}
	}
	if !success(status) {
		return domain.TicketListResult{Error: serverMessage(body, ListFailedMessage)}
	}

	tickets, err := decodeTickets(body)
	if err != nil {
		c.logger.Warn("unreadable ticket list", "error", err)
		return domain.TicketListResult{Error: ListFailedMessage}
	}
	return domain.TicketListResult{Success: true, Tickets: tickets}
}

func decodeTickets(body []byte) ([]domain.Ticket, error) {
	trimmed := bytes.TrimSpace(body)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var tickets []domain.Ticket
		err := json.Unmarshal(trimmed, &tickets)
		return orEmpty(tickets), err
	}
	var wrapped struct {
		Tickets []domain.Ticket `json:"tickets"`
	}
	err := json.Unmarshal(trimmed, &wrapped)
	return orEmpty(wrapped.Tickets), err
}

func orEmpty(t []domain.Ticket) []domain.Ticket {
	if t == nil {
		return []domain.Ticket{}
	}
	return t
}

func (c *Client) ResolveEmail(ctx context.Context, lookup domain.EmailLookup) (string, bool) {
	if lookup.Empty() {
		return "", false
	}
	q := url.Values{}
	if lookup.NinjaDeviceID != nil {
		q.Set("ninjaDeviceId", strconv.FormatInt(*lookup.NinjaDeviceID, 10))
	}
	if lookup.ComputerName != nil {
		q.Set("computerName", *lookup.ComputerName)
	}

	status, body, err := c.do(ctx, http.MethodGet, c.baseURL+"/devices/email?"+q.Encode(), nil)
	if err != nil || !success(status) {
		c.logger.Debug("email lookup missed", "status", status, "error", err)
		return "", false
	}
	var resp struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", false
	}
	email := strings.TrimSpace(resp.Email)
	return email, email != ""
}

// Health reports whether the server answered with a status below 500.
func (c *Client) Health(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	status, _, err := c.do(ctx, http.MethodGet, c.healthURL, nil)
	if err != nil {
		c.logger.Debug("health check failed", "error", err)
		return false
	}
	return status < http.StatusInternalServerError
}

func (c *Client) do(ctx context.Context, method, target string, body any) (int, []byte, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", applicationJSON)
	}
	req.Header.Set("Accept", applicationJSON)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil && !errors.Is(err, io.EOF) {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

func success(status int) bool {
	return status >= 200 && status < 300
}

// serverMessage returns the error or message field of a JSON error body,
// or fallback.
func serverMessage(body []byte, fallback string) string {
	var resp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fallback
	}
	if msg := strings.TrimSpace(resp.Error); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(resp.Message); msg != "" {
		return msg
	}
	return fallback
}
