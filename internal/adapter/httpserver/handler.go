package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atlas-it/atlas-agent/internal/domain"
	"github.com/atlas-it/atlas-agent/internal/impls"
	"github.com/atlas-it/atlas-agent/internal/usecase/ticket"
)

// submitTimeout bounds context collection plus the upstream call so the
// response lands before the server's write deadline.
const submitTimeout = 2 * time.Minute

type response struct {
	Ok    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

type healthResponse struct {
	Reachable bool `json:"reachable"`
}

// Tickets is the ticket use case as seen by the local API.
type Tickets interface {
	Submit(ctx context.Context, form ticket.Form, dc domain.DeviceContext) (domain.SubmitResult, error)
	List(ctx context.Context, email string) (domain.TicketListResult, error)
	Health(ctx context.Context) bool
}

type API struct {
	collector impls.ContextCollector
	tickets   Tickets
	logger    *slog.Logger
}

func NewAPI(collector impls.ContextCollector, tickets Tickets, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{collector: collector, tickets: tickets, logger: logger}
}

// RegisterRoutes mounts the API. /ping stays open; everything else goes
// through auth.
func (a *API) RegisterRoutes(router gin.IRouter, auth gin.HandlerFunc) {
	router.GET("/ping", a.ping)

	secured := router.Group("/", auth)
	secured.GET("/context", a.deviceContext)
	secured.POST("/tickets", a.submitTicket)
	secured.GET("/tickets", a.listTickets)
	secured.GET("/health", a.health)
}

func (a *API) ping(c *gin.Context) {
	c.JSON(http.StatusOK, response{Ok: true})
}

func (a *API) deviceContext(c *gin.Context) {
	c.JSON(http.StatusOK, response{Ok: true, Data: a.collector.Collect(c.Request.Context())})
}

func (a *API) submitTicket(c *gin.Context) {
	var form ticket.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		a.logger.Warn("submit ticket: invalid payload", "error", err)
		c.JSON(http.StatusBadRequest, response{Ok: false, Error: "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), submitTimeout)
	defer cancel()

	dc := a.collector.Collect(ctx)
	res, err := a.tickets.Submit(ctx, form, dc)
	if err != nil {
		a.fail(c, "submit ticket", err)
		return
	}
	c.JSON(http.StatusOK, response{Ok: true, Data: res})
}

func (a *API) listTickets(c *gin.Context) {
	res, err := a.tickets.List(c.Request.Context(), c.Query("email"))
	if err != nil {
		a.fail(c, "list tickets", err)
		return
	}
	c.JSON(http.StatusOK, response{Ok: true, Data: res})
}

func (a *API) health(c *gin.Context) {
	c.JSON(http.StatusOK, response{Ok: true, Data: healthResponse{Reachable: a.tickets.Health(c.Request.Context())}})
}

func (a *API) fail(c *gin.Context, op string, err error) {
	var verr domain.ErrValidation
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, response{Ok: false, Error: verr.Error()})
	case errors.Is(err, domain.ErrSubmitInFlight):
		c.JSON(http.StatusConflict, response{Ok: false, Error: err.Error()})
	default:
		a.logger.Error(op+" failed", "error", err)
		c.JSON(http.StatusInternalServerError, response{Ok: false, Error: "internal error"})
	}
}
