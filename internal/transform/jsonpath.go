// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package transform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"github.com/YassinCh/skilltest-buienradar/internal/logger"
	"github.com/YassinCh/skilltest-buienradar/internal/source"
)

const (
	jsonPathLoggerName = "skilltest:transform:jsonpath"
)

// JSONPath rebuilds a JSON document from text fragments and yields the elements
// of the list found at a fixed path of object keys.
//
// Unlike the other stages it drains its whole input before producing anything,
// since fragments are not parseable until the document is complete.
type JSONPath struct {
	path []string
}

// NewJSONPath returns a JSONPath descending into path. An empty path expects
// the document itself to be a list.
func NewJSONPath(path ...string) *JSONPath {
	return &JSONPath{path: slices.Clone(path)}
}

// Transform implements pipeline.Transformer.
func (j *JSONPath) Transform(ctx context.Context, in iter.Seq2[source.Item, error]) iter.Seq2[source.Item, error] {
	return func(yield func(source.Item, error) bool) {
		log := logger.FromContext(ctx).WithName(jsonPathLoggerName)

		document := new(strings.Builder)
		fragments := 0
		for item, err := range in {
			if err != nil {
				yield(source.Item{}, err)
				return
			}

			text, ok := item.Text()
			if !ok {
				yield(source.Item{}, &MalformedDocumentError{Reason: fmt.Sprintf("expected a text fragment, got %T", item.Data)})
				return
			}

			fragments++
			document.WriteString(text)
		}

		log.Trace("document assembled", "fragments", fragments, "bytes", document.Len())
		elements, err := j.extract(document.String())
		if err != nil {
			yield(source.Item{}, err)
			return
		}

		log.Debug("document parsed", "path", formatPath(j.path), "elements", len(elements))
		for _, element := range elements {
			if !yield(source.NewValue(element), nil) {
				return
			}
		}
	}
}

func (j *JSONPath) extract(document string) ([]any, error) {
	decoder := json.NewDecoder(strings.NewReader(document))
	decoder.UseNumber()

	var current any
	if err := decoder.Decode(&current); err != nil {
		return nil, &MalformedDocumentError{Reason: "invalid JSON", Err: err}
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, &MalformedDocumentError{Reason: "unexpected data after the end of the document"}
	}

	for index, key := range j.path {
		object, ok := current.(map[string]any)
		if !ok {
			return nil, &MalformedDocumentError{
				Path:   slices.Clone(j.path[:index]),
				Reason: fmt.Sprintf("expected an object, got %s", jsonType(current)),
			}
		}

		current, ok = object[key]
		if !ok {
			return nil, &KeyNotFoundError{Key: key, Path: slices.Clone(j.path[:index+1])}
		}
	}

	elements, ok := current.([]any)
	if !ok {
		return nil, &MalformedDocumentError{
			Path:   slices.Clone(j.path),
			Reason: fmt.Sprintf("expected a list, got %s", jsonType(current)),
		}
	}

	return elements, nil
}

func jsonType(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "list"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", value)
	}
}
