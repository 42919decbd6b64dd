// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	requestIDHeaderName    = "x-request-id"
	forwardedForHeaderName = "x-forwarded-for"

	IncomingRequestMessage  = "incoming request"
	RequestCompletedMessage = "request completed"
)

type httpRequest struct {
	Method    string `json:"method,omitempty"`
	Path      string `json:"path,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}

type httpResponse struct {
	StatusCode int `json:"statusCode,omitempty"`
	Bytes      int `json:"bytes"`
}

type remoteHost struct {
	Hostname string `json:"hostname,omitempty"`
	IP       string `json:"ip,omitempty"`
}

// requestID returns the id sent by the caller or a freshly generated one.
func requestID(c *fiber.Ctx) string {
	if id := c.Get(requestIDHeaderName); id != "" {
		return id
	}

	return uuid.NewString()
}

func requestFields(c *fiber.Ctx) []any {
	ip := c.Get(forwardedForHeaderName)
	if ip == "" {
		ip = c.IP()
	}

	return []any{
		"request", httpRequest{
			Method:    c.Method(),
			Path:      c.OriginalURL(),
			UserAgent: c.Get(fiber.HeaderUserAgent),
		},
		"host", remoteHost{
			Hostname: c.Hostname(),
			IP:       ip,
		},
	}
}

// responseFields reads status and size from the handler error when fiber has not yet written it.
func responseFields(c *fiber.Ctx, handlerErr error) httpResponse {
	var fiberErr *fiber.Error
	if errors.As(handlerErr, &fiberErr) {
		return httpResponse{StatusCode: fiberErr.Code, Bytes: len(fiberErr.Message)}
	}

	return httpResponse{
		StatusCode: c.Response().StatusCode(),
		Bytes:      len(c.Response().Body()),
	}
}

// RequestMiddlewareLogger is a fiber middleware to log all requests.
// Requests whose path starts with one of excludedPrefix are not logged.
func RequestMiddlewareLogger(logger Logger, excludedPrefix []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, prefix := range excludedPrefix {
			if strings.HasPrefix(c.Path(), prefix) {
				return c.Next()
			}
		}

		start := time.Now()
		requestLogger := logger.WithName("request").With("requestId", requestID(c))
		c.SetUserContext(WithContext(c.UserContext(), requestLogger))

		fields := requestFields(c)
		requestLogger.Trace(IncomingRequestMessage, fields...)

		err := c.Next()

		fields = append(fields,
			"response", responseFields(c, err),
			"responseTime", float64(time.Since(start).Milliseconds()),
		)
		requestLogger.Info(RequestCompletedMessage, fields...)
		return err
	}
}
