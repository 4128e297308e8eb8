package seatmap

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatTypesDecodePreservesObjectOrder(t *testing.T) {
	raw := []byte(`{"vip":"VIP","regular":"Regular","premium":"Premium"}`)

	var types SeatTypes
	require.NoError(t, json.Unmarshal(raw, &types))

	assert.Equal(t, []string{"vip", "regular", "premium"}, types.IDs())
	assert.Equal(t, "vip", types.Default())
}

func TestSeatTypesDecodeListForm(t *testing.T) {
	raw := []byte(`[{"id":"balcony","label":"Balcony"},{"id":"floor","label":"Floor"}]`)

	var types SeatTypes
	require.NoError(t, json.Unmarshal(raw, &types))

	require.Len(t, types, 2)
	assert.Equal(t, "balcony", types.Default())
	assert.Equal(t, "Floor", types.Label("floor"))
}

func TestSeatTypesEncodeKeepsOrder(t *testing.T) {
	types := SeatTypes{{ID: "vip", Label: "VIP"}, {ID: "regular", Label: "Regular"}}

	out, err := json.Marshal(types)
	require.NoError(t, err)
	assert.Equal(t, `{"vip":"VIP","regular":"Regular"}`, string(out))
}

func TestDetectSeatMap(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind MapKind
	}{
		{"custom document", `{"layout":"custom","version":2,"sections":[]}`, KindCustom},
		{"legacy grid", `[["regular","vip"],["regular","regular"]]`, KindGrid},
		{"untagged object", `{"version":2}`, KindNone},
		{"empty payload", ``, KindNone},
		{"null payload", `null`, KindNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, DetectSeatMap([]byte(tt.data)).Kind)
		})
	}
}
