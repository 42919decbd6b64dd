// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package mapper

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// timeLayouts are tried in order when a datetime is received as a string.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Decode validates input against the schema of T and returns the populated record.
// Keys of input that no field declares are ignored. When validation fails the
// returned error is a *ValidationError listing every invalid field.
func Decode[T any](input any) (T, error) {
	var record T
	schema, err := SchemaFor[T]()
	if err != nil {
		return record, err
	}

	if err := schema.decode(input, reflect.ValueOf(&record).Elem()); err != nil {
		return record, err
	}

	return record, nil
}

func (s *Schema) decode(input any, target reflect.Value) error {
	values, ok := input.(map[string]any)
	if !ok {
		return &ValidationError{
			Type:   s.Name,
			Fields: []FieldError{{Reason: fmt.Sprintf("input should be an object, got %T", input)}},
		}
	}

	var problems []FieldError
	for _, field := range s.Fields {
		raw, present := values[field.Alias]
		if raw == nil {
			switch {
			case field.Default != nil:
				assign(target.Field(field.index), field, field.Default)
			case field.Required && !present:
				problems = append(problems, field.problem("field required"))
			case field.Required:
				problems = append(problems, field.problem("input should be a valid "+field.Kind.String()+", got null"))
			}
			continue
		}

		value, err := coerce(field.Kind, raw)
		if err == nil && field.Kind == KindInt {
			err = checkOverflow(field.typ, value.(int64))
		}
		if err != nil {
			problems = append(problems, field.problem(err.Error()))
			continue
		}

		assign(target.Field(field.index), field, value)
	}

	if len(problems) > 0 {
		return &ValidationError{Type: s.Name, Fields: problems}
	}

	return nil
}

func (f Field) problem(reason string) FieldError {
	return FieldError{Field: f.Name, Alias: f.Alias, Reason: reason}
}

func assign(dst reflect.Value, field Field, value any) {
	converted := reflect.ValueOf(value).Convert(field.typ)
	if !field.nullable {
		dst.Set(converted)
		return
	}

	ptr := reflect.New(field.typ)
	ptr.Elem().Set(converted)
	dst.Set(ptr)
}

func checkOverflow(typ reflect.Type, value int64) error {
	if reflect.New(typ).Elem().OverflowInt(value) {
		return fmt.Errorf("input %d overflows %s", value, typ)
	}

	return nil
}

// coerce converts raw into the canonical Go value of kind: string, int64, float64, bool or time.Time.
func coerce(kind Kind, raw any) (any, error) {
	switch kind {
	case KindString:
		if value, ok := raw.(string); ok {
			return value, nil
		}
	case KindInt:
		return toInt(raw)
	case KindFloat:
		return toFloat(raw)
	case KindBool:
		return toBool(raw)
	case KindTime:
		return toTime(raw)
	}

	return nil, invalidInput(kind, raw)
}

func invalidInput(kind Kind, raw any) error {
	return fmt.Errorf("input should be a valid %s, got %T", kind, raw)
}

func toInt(raw any) (int64, error) {
	switch value := raw.(type) {
	case json.Number:
		if n, err := value.Int64(); err == nil {
			return n, nil
		}
		f, err := value.Float64()
		if err != nil {
			return 0, fmt.Errorf("input should be a valid integer, unable to parse %q", value)
		}
		return integral(f)
	case float64:
		return integral(value)
	case float32:
		return integral(float64(value))
	case int:
		return int64(value), nil
	case int32:
		return int64(value), nil
	case int64:
		return value, nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("input should be a valid integer, unable to parse %q", value)
		}
		return n, nil
	}

	return 0, invalidInput(KindInt, raw)
}

func integral(value float64) (int64, error) {
	if value != math.Trunc(value) || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, fmt.Errorf("input should be a valid integer, got a number with a fractional part")
	}

	if value < math.MinInt64 || value >= math.MaxInt64 {
		return 0, fmt.Errorf("input %v overflows int64", value)
	}

	return int64(value), nil
}

func toFloat(raw any) (float64, error) {
	switch value := raw.(type) {
	case json.Number:
		f, err := value.Float64()
		if err != nil {
			return 0, fmt.Errorf("input should be a valid number, unable to parse %q", value)
		}
		return f, nil
	case float64:
		return value, nil
	case float32:
		return float64(value), nil
	case int:
		return float64(value), nil
	case int32:
		return float64(value), nil
	case int64:
		return float64(value), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, fmt.Errorf("input should be a valid number, unable to parse %q", value)
		}
		return f, nil
	}

	return 0, invalidInput(KindFloat, raw)
}

func toBool(raw any) (bool, error) {
	switch value := raw.(type) {
	case bool:
		return value, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return false, fmt.Errorf("input should be a valid boolean, unable to parse %q", value)
		}
		return b, nil
	}

	return false, invalidInput(KindBool, raw)
}

func toTime(raw any) (time.Time, error) {
	switch value := raw.(type) {
	case time.Time:
		return value, nil
	case json.Number:
		seconds, err := value.Int64()
		if err != nil {
			return time.Time{}, fmt.Errorf("input should be a valid datetime, unable to parse %q", value)
		}
		return time.Unix(seconds, 0).UTC(), nil
	case string:
		trimmed := strings.TrimSpace(value)
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, trimmed); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, fmt.Errorf("input should be a valid datetime, unable to parse %q", value)
	}

	return time.Time{}, invalidInput(KindTime, raw)
}
