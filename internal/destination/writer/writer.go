// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package writer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strings"
	"sync"

	"github.com/YassinCh/skilltest-buienradar/internal/destination"
)

// Loader prints every record as indented JSON instead of persisting it.
type Loader[T any] struct {
	writer io.Writer
	name   string

	lock sync.Mutex
}

// NewLoader returns a Loader writing to w. name labels every printed record.
func NewLoader[T any](w io.Writer, name string) destination.Loader[T] {
	return &Loader[T]{
		writer: w,
		name:   name,
	}
}

// Load implements destination.Loader. Records are printed as they arrive, a
// failing run may therefore leave a partial output behind.
func (l *Loader[T]) Load(_ context.Context, items iter.Seq2[T, error]) error {
	count := 0
	for item, err := range items {
		if err != nil {
			return err
		}

		if err := l.print(item); err != nil {
			return err
		}
		count++
	}

	l.lock.Lock()
	defer l.lock.Unlock()
	_, err := fmt.Fprintf(l.writer, "Loaded %d %s\n", count, l.name)
	return err
}

func (l *Loader[T]) print(item T) error {
	builder := new(strings.Builder)
	builder.WriteString("Load " + l.name + ":\n\t")

	encoder := json.NewEncoder(builder)
	encoder.SetIndent("\t", "\t")
	if err := encoder.Encode(item); err != nil {
		return fmt.Errorf("encoding %s: %w", l.name, err)
	}

	l.lock.Lock()
	defer l.lock.Unlock()
	_, err := fmt.Fprint(l.writer, builder.String())
	return err
}
