// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package source

import (
	"errors"
	"fmt"
)

// ErrTransport is matched by every error raised while talking to the remote endpoint.
var ErrTransport = errors.New("transport error")

// TransportError reports a failed request or a non-success response.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: GET %s: unexpected status code %d", ErrTransport, e.URL, e.StatusCode)
	}

	return fmt.Sprintf("%s: GET %s: %s", ErrTransport, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
