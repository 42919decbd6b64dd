// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fake

import (
	"sync"
	"testing"

	"github.com/YassinCh/skilltest-buienradar/internal/server"
)

var _ server.Server = &Server{}

// Server blocks in Start until Stop is called, without listening on any port.
type Server struct {
	tb       testing.TB
	startErr error

	startedChan chan struct{}
	closedChan  chan struct{}
	stopOnce    sync.Once
}

func NewFakeServer(tb testing.TB) *Server {
	tb.Helper()

	return &Server{
		tb:          tb,
		startedChan: make(chan struct{}),
		closedChan:  make(chan struct{}),
	}
}

// NewFailingServer returns a Server whose Start returns err immediately.
func NewFailingServer(tb testing.TB, err error) *Server {
	tb.Helper()

	s := NewFakeServer(tb)
	s.startErr = err
	return s
}

func (s *Server) Start() error {
	s.tb.Helper()
	close(s.startedChan)
	if s.startErr != nil {
		return s.startErr
	}

	<-s.closedChan
	return nil
}

func (s *Server) Stop() error {
	s.tb.Helper()
	s.stopOnce.Do(func() {
		close(s.closedChan)
	})
	return nil
}

// StartedServer is closed once Start has been called.
func (s *Server) StartedServer() <-chan struct{} {
	s.tb.Helper()
	return s.startedChan
}

// StoppedServer is closed once Stop has been called.
func (s *Server) StoppedServer() <-chan struct{} {
	s.tb.Helper()
	return s.closedChan
}
