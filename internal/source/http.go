// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package source

import (
	"bufio"
	"context"
	"errors"
	"io"
	"iter"
	"net/http"
	"strings"

	"github.com/YassinCh/skilltest-buienradar/internal/logger"
)

const (
	loggerName = "skilltest:source:http"
)

var _ Source = &HTTPSource{}

// HTTPSource fetches a remote document with a single GET request and yields
// it one line at a time.
type HTTPSource struct {
	url    string
	client *http.Client
}

// HTTPOption customizes an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient replaces the default http client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		s.client = client
	}
}

// NewHTTPSource returns a Source reading from url.
func NewHTTPSource(url string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		url:    url,
		client: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Fetch performs the request when the returned sequence is iterated. The body is
// read lazily and lines are yielded without their trailing line terminator.
func (s *HTTPSource) Fetch(ctx context.Context) iter.Seq2[Item, error] {
	return func(yield func(Item, error) bool) {
		log := logger.FromContext(ctx).WithName(loggerName)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			yield(Item{}, &TransportError{URL: s.url, Err: err})
			return
		}

		log.Debug("fetching remote document", "url", s.url)
		resp, err := s.client.Do(req)
		if err != nil {
			yield(Item{}, &TransportError{URL: s.url, Err: err})
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			yield(Item{}, &TransportError{URL: s.url, StatusCode: resp.StatusCode})
			return
		}

		lines := 0
		reader := bufio.NewReader(resp.Body)
		for {
			line, err := reader.ReadString('\n')
			if len(line) > 0 {
				lines++
				if !yield(NewLine(strings.TrimRight(line, "\r\n")), nil) {
					return
				}
			}

			switch {
			case errors.Is(err, io.EOF):
				log.Debug("remote document read", "url", s.url, "lines", lines)
				return
			case err != nil:
				yield(Item{}, &TransportError{URL: s.url, Err: err})
				return
			}
		}
	}
}
