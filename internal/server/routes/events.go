package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fr0stylo/chaindex/internal/app/services"
	"github.com/fr0stylo/chaindex/internal/event"
)

// EventRoutes serves the read-only query API over the indexed event store.
type EventRoutes struct {
	query *services.Query
	log   *slog.Logger
}

// NewEventRoutes constructs the event query routes.
func NewEventRoutes(query *services.Query, log *slog.Logger) *EventRoutes {
	if log == nil {
		log = slog.Default()
	}
	return &EventRoutes{query: query, log: log}
}

// RegisterRoutes registers the query endpoints.
func (r *EventRoutes) RegisterRoutes(s *echo.Echo) {
	s.GET("/event/:category/quantity", r.handleQuantity)
	s.GET("/event/:category", r.handleByIndex)
}

func (r *EventRoutes) handleQuantity(c echo.Context) error {
	category, ok := event.ParseCategory(c.Param("category"))
	if !ok {
		return respond(c, http.StatusNotFound, nil)
	}

	count, found, err := r.query.Quantity(c.Request().Context(), category)
	if err != nil {
		r.log.ErrorContext(c.Request().Context(), "quantity query failed", "category", category.String(), "error", err)
		return respond(c, http.StatusInternalServerError, nil)
	}
	if !found {
		return respond(c, http.StatusOK, []byte(fmt.Sprintf("There are no events of %s type yet.", category)))
	}
	return respond(c, http.StatusOK, []byte(strconv.FormatInt(count, 10)))
}

func (r *EventRoutes) handleByIndex(c echo.Context) error {
	category, ok := event.ParseCategory(c.Param("category"))
	if !ok {
		return respond(c, http.StatusNotFound, nil)
	}

	rawIndex := c.QueryParam("index")
	if rawIndex == "" {
		return respond(c, http.StatusBadRequest, nil)
	}
	index, err := strconv.ParseInt(rawIndex, 10, 64)
	if err != nil || index <= 0 {
		// Sequence numbers start at 1; zero and negatives are malformed
		// client input, not lookups.
		return respond(c, http.StatusBadRequest, nil)
	}

	record, found, err := r.query.ByIndex(c.Request().Context(), category, index)
	if err != nil {
		r.log.ErrorContext(c.Request().Context(), "index query failed", "category", category.String(), "index", index, "error", err)
		return respond(c, http.StatusInternalServerError, nil)
	}
	if !found {
		return respond(c, http.StatusOK, []byte(fmt.Sprintf("There is no event of %s type with index %d.", category, index)))
	}
	return respond(c, http.StatusOK, record)
}

// respond writes the body verbatim with a JSON content type; records are
// stored as serialized JSON and counters and absent-result messages go out
// as-is, matching the established interface.
func respond(c echo.Context, status int, body []byte) error {
	return c.Blob(status, echo.MIMEApplicationJSON, body)
}
