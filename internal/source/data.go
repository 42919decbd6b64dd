// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package source

// Item is one unit of fetched data: either a raw line of text or an already
// decoded value such as a JSON object.
type Item struct {
	// Data holds the payload. It is never nil for items produced by a Source.
	Data any
}

// NewLine wraps a single line of text.
func NewLine(line string) Item {
	return Item{Data: line}
}

// NewValue wraps a decoded value.
func NewValue(value any) Item {
	return Item{Data: value}
}

// Text returns the line carried by the item.
func (i Item) Text() (string, bool) {
	text, ok := i.Data.(string)
	return text, ok
}

// Object returns the item payload when it is a JSON object.
func (i Item) Object() (map[string]any, bool) {
	object, ok := i.Data.(map[string]any)
	return object, ok
}
