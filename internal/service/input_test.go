package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositiveInt_Accepts(t *testing.T) {
	cases := map[string]any{
		"int":          7,
		"int64":        int64(7),
		"whole float":  7.0,
		"string":       "7",
		"padded":       " 7 ",
		"float string": "7.0",
		"json number":  json.Number("7"),
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			n, err := positiveInt("zone", in)
			require.NoError(t, err)
			assert.Equal(t, 7, n)
		})
	}
}

func TestPositiveInt_Rejects(t *testing.T) {
	cases := map[string]any{
		"nil":        nil,
		"zero":       0,
		"negative":   -3,
		"fraction":   2.5,
		"empty":      "",
		"letters":    "seven",
		"bool":       false,
		"huge":       1e12,
		"struct":     struct{}{},
		"neg string": "-1",
		"mixed":      "3abc",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := positiveInt("zone", in)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestZoneLabel(t *testing.T) {
	assert.Equal(t, "", zoneLabel(nil))
	assert.Equal(t, "4", zoneLabel(4.0))
	assert.Equal(t, "4", zoneLabel("4"))
	assert.Equal(t, "front", zoneLabel(" front "))
}
