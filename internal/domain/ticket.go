package domain

import (
	"strings"
	"time"
)

// ReferencePrefix prefixes the human-facing ticket reference code.
const ReferencePrefix = "ATLAS-"

// TicketSubmission is the payload sent to the ticketing API.
type TicketSubmission struct {
	Email         string        `json:"email"`
	Title         string        `json:"title"`
	Body          string        `json:"body"`
	Priority      string        `json:"priority"`
	NinjaDeviceID *int64        `json:"ninjaDeviceId,omitempty"`
	ComputerName  *string       `json:"computerName,omitempty"`
	TeamViewerID  *string       `json:"teamviewerId,omitempty"`
	WidgetContext WidgetContext `json:"widgetContext"`
}

// WidgetContext carries client-side details the server uses for enrichment.
type WidgetContext struct {
	Category          string  `json:"category,omitempty"`
	Urgency           string  `json:"urgency,omitempty"`
	ClientVersion     string  `json:"clientVersion"`
	OSVersion         *string `json:"osVersion"`
	OSPlatform        string  `json:"osPlatform"`
	IPAddress         string  `json:"ipAddress"`
	Domain            *string `json:"domain"`
	TeamViewerVersion *string `json:"teamviewerVersion"`
}

// Enrichment summarises what the server matched for a submitted ticket.
type Enrichment struct {
	DeviceMatched  bool     `json:"deviceMatched"`
	DeviceCount    int      `json:"deviceCount"`
	EndUserMatched bool     `json:"endUserMatched"`
	EnrichedFields []string `json:"enrichedFields"`
}

// SubmitResult is the outcome of a single submission attempt.
type SubmitResult struct {
	Success       bool        `json:"success"`
	TicketID      string      `json:"ticketId,omitempty"`
	ReferenceCode string      `json:"referenceCode,omitempty"`
	Enrichment    *Enrichment `json:"enrichment,omitempty"`
	Error         string      `json:"error,omitempty"`
}

// Ticket is a ticket as listed by the API.
type Ticket struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Priority  string    `json:"priority"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TicketListResult is the outcome of a list request.
type TicketListResult struct {
	Success bool     `json:"success"`
	Tickets []Ticket `json:"tickets"`
	Error   string   `json:"error,omitempty"`
}

// EmailLookup identifies a device when asking the API for its end user.
type EmailLookup struct {
	NinjaDeviceID *int64
	ComputerName  *string
}

// Empty reports whether the lookup carries no identifier at all.
func (l EmailLookup) Empty() bool {
	return l.NinjaDeviceID == nil && l.ComputerName == nil
}

// ReferenceCode derives the support reference from a server ticket id:
// the first eight hex characters, uppercased.
func ReferenceCode(ticketID string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(ticketID) {
		if b.Len() == 8 {
			break
		}
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return ReferencePrefix + strings.ToUpper(b.String())
}
