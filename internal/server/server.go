// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/YassinCh/skilltest-buienradar/internal/info"
	"github.com/YassinCh/skilltest-buienradar/internal/logger"
)

const (
	loggerName = "skilltest:server"
)

// Server is an http server that can be stopped from another goroutine.
type Server interface {
	// Start blocks until the server is stopped or fails to listen.
	Start() error
	Stop() error
}

var _ Server = &FiberServer{}

// FiberServer exposes the analysis queries over http.
type FiberServer struct {
	config Config

	app *fiber.App
}

var (
	ErrServerListen   = errors.New("server listen error")
	ErrServerShutdown = errors.New("server shutdown error")
)

// NewServer returns a FiberServer answering with analyzer and configured from the environment.
func NewServer(ctx context.Context, analyzer Analyzer) (*FiberServer, error) {
	cfg, err := LoadServerConfig()
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               info.AppName,
		DisableStartupMessage: cfg.DisableStartupMessage,
		UnescapePath:          true,
		ErrorHandler:          errorHandler,
	})
	log := logger.FromContext(ctx)
	app.Use(logger.RequestMiddlewareLogger(log, []string{"/-/"}))

	statusRoutes(app, info.AppName, info.Version)
	analysisRoutes(app, analyzer)

	return &FiberServer{
		app:    app,
		config: *cfg,
	}, nil
}

// App returns the underlying fiber application.
func (s *FiberServer) App() *fiber.App {
	return s.app
}

func (s *FiberServer) Start() error {
	if err := s.app.Listen(s.config.Address()); err != nil {
		return fmt.Errorf("%w: %w", ErrServerListen, err)
	}
	return nil
}

func (s *FiberServer) Stop() error {
	if err := s.app.Shutdown(); err != nil {
		return fmt.Errorf("%w: %w", ErrServerShutdown, err)
	}
	return nil
}

// errorHandler renders every error as a json body carrying its status code.
func errorHandler(c *fiber.Ctx, err error) error {
	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	} else {
		logger.FromContext(c.UserContext()).WithName(loggerName).Error("unhandled error", "error", err.Error())
	}

	return c.Status(code).JSON(fiber.Map{
		"statusCode": code,
		"error":      http.StatusText(code),
		"message":    message,
	})
}
