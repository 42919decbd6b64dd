// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package transform

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YassinCh/skilltest-buienradar/internal/mapper"
	"github.com/YassinCh/skilltest-buienradar/internal/source"
	"github.com/YassinCh/skilltest-buienradar/internal/source/fake"
)

type station struct {
	ID     int64    `field:"stationid"`
	Name   string   `field:"stationname"`
	Region *string  `field:"regio"`
	Lat    *float64 `field:"lat"`
}

func TestSchema(t *testing.T) {
	t.Parallel()

	region := "Venlo"
	testCases := map[string]struct {
		items          []source.Item
		expected       []station
		expectedFields []mapper.FieldError
	}{
		"valid items with unknown keys": {
			items: []source.Item{
				source.NewValue(map[string]any{"stationid": json.Number("6391"), "stationname": "Arcen", "regio": "Venlo", "winddirection": "ZW"}),
				source.NewValue(map[string]any{"stationid": json.Number("6260"), "stationname": "De Bilt"}),
			},
			expected: []station{
				{ID: 6391, Name: "Arcen", Region: &region},
				{ID: 6260, Name: "De Bilt"},
			},
		},
		"first invalid item stops the run": {
			items: []source.Item{
				source.NewValue(map[string]any{"stationid": json.Number("1"), "stationname": "A"}),
				source.NewValue(map[string]any{"stationname": "B", "lat": "north"}),
				source.NewValue(map[string]any{"stationid": json.Number("3"), "stationname": "C"}),
			},
			expected: []station{{ID: 1, Name: "A"}},
			expectedFields: []mapper.FieldError{
				{Field: "ID", Alias: "stationid", Reason: "field required"},
				{Field: "Lat", Alias: "lat", Reason: `input should be a valid number, unable to parse "north"`},
			},
		},
		"text item is not an object": {
			items:          []source.Item{source.NewLine("stationid=1")},
			expectedFields: []mapper.FieldError{{Reason: "input should be an object, got string"}},
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			var records []station
			var err error
			for record, recordErr := range NewSchema[station]().Transform(t.Context(), fake.NewSource(test.items...).Fetch(t.Context())) {
				if recordErr != nil {
					err = recordErr
					break
				}
				records = append(records, record)
			}

			assert.Equal(t, test.expected, records)
			if test.expectedFields == nil {
				require.NoError(t, err)
				return
			}

			var validationErr *mapper.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, test.expectedFields, validationErr.Fields)
		})
	}
}
