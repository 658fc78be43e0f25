// Package server exposes the lox pipeline over HTTP.
package server

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ltungv/lox/exprlox/internal/config"
	"github.com/ltungv/lox/exprlox/internal/logs"
	"github.com/ltungv/lox/exprlox/internal/lox"
)

// RequestIDHeader carries the id assigned to every request.
const RequestIDHeader = "X-Request-Id"

// Server is the HTTP API server for the lox pipeline.
type Server struct {
	app    *fiber.App
	logger *slog.Logger
	cfg    config.Server
}

// SourceRequest is the body accepted by every pipeline endpoint.
type SourceRequest struct {
	Source string `json:"source"`
}

// TokenJSON is the wire form of a token.
type TokenJSON struct {
	Kind    string  `json:"kind"`
	Lexeme  string  `json:"lexeme"`
	Literal *string `json:"literal"`
	Line    int     `json:"line"`
}

// Response is returned by every pipeline endpoint.
type Response struct {
	Mode     string      `json:"mode"`
	Output   []string    `json:"output"`
	Errors   []string    `json:"errors"`
	ExitCode int         `json:"exitCode"`
	Tokens   []TokenJSON `json:"tokens,omitempty"`
	Type     string      `json:"type,omitempty"`
}

// New creates a new API server.
func New(cfg config.Server, logger *slog.Logger) *Server {
	srv := &Server{
		logger: logger,
		cfg:    cfg,
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		BodyLimit:             cfg.MaxSourceSize + 1024,
		ErrorHandler:          srv.handleError,
	})

	app.Use(srv.requestID)
	app.Get("/healthz", srv.healthz)
	app.Post("/v1/tokenize", srv.run(lox.ModeTokenize))
	app.Post("/v1/parse", srv.run(lox.ModeParse))
	app.Post("/v1/evaluate", srv.run(lox.ModeEvaluate))

	srv.app = app
	return srv
}

// Listen starts the HTTP server on the configured address.
func (s *Server) Listen() error {
	s.logger.Info("listening", "addr", s.cfg.Addr)
	return s.app.Listen(s.cfg.Addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App returns the underlying Fiber app (useful for testing).
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) requestID(c *fiber.Ctx) error {
	id := c.Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	c.Set(RequestIDHeader, id)
	c.SetUserContext(logs.WithRequestID(c.UserContext(), id))
	return c.Next()
}

func (s *Server) healthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) run(mode lox.Mode) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req SourceRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
		}
		if len(req.Source) > s.cfg.MaxSourceSize {
			return fiber.NewError(fiber.StatusRequestEntityTooLarge, "source too large")
		}

		start := time.Now()
		res := lox.Run(mode, req.Source)
		s.logger.DebugContext(c.UserContext(), "ran source",
			"mode", mode.String(),
			"tokens", len(res.Tokens),
			"errors", len(res.Errors),
			"exit_code", res.ExitCode,
			"elapsed", time.Since(start),
		)

		status := fiber.StatusOK
		if res.ExitCode != lox.ExitOK {
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(newResponse(res))
	}
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		s.logger.ErrorContext(c.UserContext(), "request failed", "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func newResponse(res *lox.Result) Response {
	resp := Response{
		Mode:     res.Mode.String(),
		Output:   res.Output,
		Errors:   make([]string, 0, len(res.Errors)),
		ExitCode: res.ExitCode,
	}
	if resp.Output == nil {
		resp.Output = []string{}
	}
	for _, err := range res.Errors {
		resp.Errors = append(resp.Errors, err.Error())
	}
	if res.Mode == lox.ModeTokenize {
		for _, tok := range res.Tokens {
			tj := TokenJSON{
				Kind:   tok.Typ.String(),
				Lexeme: tok.Lexeme,
				Line:   tok.Line,
			}
			if tok.Literal != nil {
				literal := tok.Literal.String()
				tj.Literal = &literal
			}
			resp.Tokens = append(resp.Tokens, tj)
		}
	}
	if res.Value != nil {
		resp.Type = res.Value.Type().String()
	}
	return resp
}
