package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowLabel(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  string
	}{
		{"first row", 0, "A"},
		{"last single letter", 25, "Z"},
		{"first double letter", 26, "AA"},
		{"last double letter", 701, "ZZ"},
		{"first triple letter", 702, "AAA"},
		{"negative index", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RowLabel(tt.index))
		})
	}
}

func TestRowLabelRoundTrip(t *testing.T) {
	for n := 0; n <= 1000; n++ {
		label := RowLabel(n)
		require.Equal(t, n, RowIndexFromLabel(label), "index %d label %q", n, label)
	}
}

func TestRowIndexFromLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  int
	}{
		{"lowercase accepted", "a", 0},
		{"double letter", "AA", 26},
		{"digits stripped", "A1", 0},
		{"empty string", "", -1},
		{"only invalid characters", "12!", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RowIndexFromLabel(tt.label))
		})
	}
}

func TestSeatIdentifierRoundTrip(t *testing.T) {
	for row := 0; row < 60; row++ {
		for col := 0; col < 40; col++ {
			parsed := ParseSeatIdentifier(FormatSeatIdentifier(row, col))
			require.NotNil(t, parsed)
			assert.Equal(t, row, parsed.Row)
			assert.Equal(t, col, parsed.Column)
		}
	}
}

func TestParseSeatIdentifier(t *testing.T) {
	tests := []struct {
		name   string
		seatID string
		ok     bool
		row    int
		column int
	}{
		{"simple", "A1", true, 0, 0},
		{"lowercase with spaces", "  b12 ", true, 1, 11},
		{"double letter row", "AA3", true, 26, 2},
		{"missing number", "A", false, 0, 0},
		{"missing letters", "12", false, 0, 0},
		{"separator not allowed", "A-1", false, 0, 0},
		{"empty", "", false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := ParseSeatIdentifier(tt.seatID)
			if !tt.ok {
				assert.Nil(t, parsed)
				return
			}
			require.NotNil(t, parsed)
			assert.Equal(t, tt.row, parsed.Row)
			assert.Equal(t, tt.column, parsed.Column)
		})
	}
}

func TestConvertLegacySeatID(t *testing.T) {
	tests := []struct {
		name   string
		seatID string
		want   string
	}{
		{"legacy first seat", "R1S1", "A1"},
		{"legacy lowercase", "r2s3", "B3"},
		{"legacy deep row", "R27S10", "AA10"},
		{"already modern", "A1", "A1"},
		{"custom code with separator", "Front-Row-1", "front-row-1"},
		{"plain word uppercased", "balcony", "BALCONY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConvertLegacySeatID(tt.seatID))
		})
	}
}

func TestConvertLegacySeatIDIdempotent(t *testing.T) {
	inputs := []string{"R1S1", "R12S34", "A1", "ZZ99", "vip-box-2", "balcony", ""}

	for _, in := range inputs {
		once := ConvertLegacySeatID(in)
		assert.Equal(t, once, ConvertLegacySeatID(once), "input %q", in)
	}
}
