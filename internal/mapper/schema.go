// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package mapper

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
)

const (
	fieldTagName   = "field"
	defaultTagName = "default"
	optionalOption = "optional"
)

// Kind is the type a field value is coerced to.
type Kind int

const (
	KindString Kind = iota + 1
	KindInt
	KindFloat
	KindBool
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindFloat:
		return "number"
	case KindBool:
		return "boolean"
	case KindTime:
		return "datetime"
	default:
		return "unknown"
	}
}

var timeType = reflect.TypeFor[time.Time]()

// Field describes how one struct field is read from an input mapping.
type Field struct {
	// Name is the Go field name.
	Name string
	// Alias is the key looked up in the input mapping.
	Alias string
	Kind  Kind
	// Required fields must be present and not null.
	Required bool
	// Default is used when the field is missing or null, nil means no default.
	Default any

	index    int
	typ      reflect.Type
	nullable bool
}

// Schema is the declarative description of a record type, derived once from the
// `field` and `default` struct tags of its fields:
//
//	type Reading struct {
//		ID          int64    `field:"$id"`
//		Temperature *float64 `field:"temperature"`
//		Unit        string   `field:"unit,optional" default:"C"`
//	}
//
// Pointer fields and fields marked optional may be missing, any other field is required.
// Unexported fields and fields tagged `field:"-"` are ignored.
type Schema struct {
	Name   string
	Fields []Field

	typ reflect.Type
}

var schemas sync.Map

// SchemaFor returns the schema describing T, building and caching it on first use.
func SchemaFor[T any]() (*Schema, error) {
	typ := reflect.TypeFor[T]()
	if cached, ok := schemas.Load(typ); ok {
		return cached.(*Schema), nil
	}

	schema, err := buildSchema(typ)
	if err != nil {
		return nil, err
	}

	actual, _ := schemas.LoadOrStore(typ, schema)
	return actual.(*Schema), nil
}

func buildSchema(typ reflect.Type) (*Schema, error) {
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrInvalidSchema, typ)
	}

	schema := &Schema{Name: typ.Name(), typ: typ}
	for index := range typ.NumField() {
		structField := typ.Field(index)
		tag := structField.Tag.Get(fieldTagName)
		if !structField.IsExported() || tag == "-" {
			continue
		}

		field, err := newField(structField, index, tag)
		if err != nil {
			return nil, fmt.Errorf("%w: %s.%s: %w", ErrInvalidSchema, typ.Name(), structField.Name, err)
		}

		schema.Fields = append(schema.Fields, field)
	}

	return schema, nil
}

func newField(structField reflect.StructField, index int, tag string) (Field, error) {
	alias, options, _ := strings.Cut(tag, ",")
	if alias == "" {
		alias = structField.Name
	}

	field := Field{
		Name:  structField.Name,
		Alias: alias,
		index: index,
		typ:   structField.Type,
	}

	if field.typ.Kind() == reflect.Pointer {
		field.nullable = true
		field.typ = field.typ.Elem()
	}

	kind, err := kindOf(field.typ)
	if err != nil {
		return Field{}, err
	}
	field.Kind = kind

	optional := false
	for option := range strings.SplitSeq(options, ",") {
		switch option {
		case "":
		case optionalOption:
			optional = true
		default:
			return Field{}, fmt.Errorf("unknown option %q", option)
		}
	}

	if rawDefault, ok := structField.Tag.Lookup(defaultTagName); ok {
		value, err := coerce(kind, rawDefault)
		if err != nil {
			return Field{}, fmt.Errorf("default %q: %w", rawDefault, err)
		}
		field.Default = value
	}

	field.Required = !field.nullable && !optional && field.Default == nil
	return field, nil
}

func kindOf(typ reflect.Type) (Kind, error) {
	if typ == timeType {
		return KindTime, nil
	}

	switch typ.Kind() {
	case reflect.String:
		return KindString, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt, nil
	case reflect.Float32, reflect.Float64:
		return KindFloat, nil
	case reflect.Bool:
		return KindBool, nil
	default:
		return 0, fmt.Errorf("unsupported type %s", typ)
	}
}
