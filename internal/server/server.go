package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"
	"golang.org/x/net/http2"

	"github.com/fr0stylo/chaindex/internal/observability"
)

// RouteRegister registers Echo routes.
type RouteRegister interface {
	RegisterRoutes(s *echo.Echo)
}

// Server holds the Echo instance.
type Server struct {
	e *echo.Echo
}

// New creates a new server instance.
func New(log *slog.Logger) *Server {
	e := echo.New()

	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(slogecho.New(log))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestContextMiddleware)

	return &Server{
		e: e,
	}
}

// errorHandler keeps error responses bodiless. Requests that match no
// registered route or method resolve to 404; the handlers shape every other
// status themselves.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
	}
	if status == http.StatusMethodNotAllowed {
		status = http.StatusNotFound
	}
	_ = c.Blob(status, echo.MIMEApplicationJSON, nil)
}

// requestContextMiddleware copies the request id and matched route onto the
// request context so log lines carry them.
func requestContextMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		ctx = observability.WithRequestID(ctx, c.Response().Header().Get(echo.HeaderXRequestID))
		ctx = observability.WithRoute(ctx, c.Path())
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// RegisterRouter attaches a route registrar.
func (s *Server) RegisterRouter(r RouteRegister) {
	r.RegisterRoutes(s.e)
}

// Start runs the HTTP server with cleartext HTTP/2 enabled; the API promises
// HTTP/2 semantics and sits behind TLS-terminating infrastructure.
func (s *Server) Start(addr string) error {
	return s.e.StartH2CServer(addr, &http2.Server{})
}

// Shutdown stops accepting new requests and drains in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
