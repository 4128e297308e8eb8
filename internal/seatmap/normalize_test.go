package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSettings(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"unset defaults", 0, 60},
		{"below minimum", 10, 24},
		{"above maximum", 500, 160},
		{"in range", 80, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSettings(Settings{SeatSize: tt.in}).SeatSize)
		})
	}
}

func TestNormalizeSeatTypes(t *testing.T) {
	t.Run("slugifies ids and drops empty entries", func(t *testing.T) {
		types := NormalizeSeatTypes(SeatTypes{
			{ID: "Front Row", Label: "Front Row"},
			{ID: "vip", Label: ""},
			{ID: "", Label: "Nameless"},
		})

		require.Len(t, types, 1)
		assert.Equal(t, "front-row", types[0].ID)
	})

	t.Run("empty input falls back to defaults", func(t *testing.T) {
		types := NormalizeSeatTypes(nil)

		assert.Equal(t, []string{"regular", "premium", "vip"}, types.IDs())
		assert.Equal(t, "regular", types.Default())
	})

	t.Run("duplicate id keeps first position with last label", func(t *testing.T) {
		types := NormalizeSeatTypes(SeatTypes{
			{ID: "vip", Label: "VIP"},
			{ID: "regular", Label: "Regular"},
			{ID: "vip", Label: "VIP Box"},
		})

		require.Len(t, types, 2)
		assert.Equal(t, "vip", types[0].ID)
		assert.Equal(t, "VIP Box", types[0].Label)
	})
}

func TestConvertGridToCustomMap(t *testing.T) {
	t.Run("wraps grid into one section", func(t *testing.T) {
		grid := LegacyGrid{
			{"regular", "regular", "vip"},
			{"premium", "premium", "premium"},
		}

		m := ConvertGridToCustomMap(grid)

		require.Len(t, m.Sections, 1)
		assert.Equal(t, "Main Floor", m.Sections[0].Name)
		require.Len(t, m.Sections[0].Rows, 2)
		assert.Equal(t, "A", m.Sections[0].Rows[0].Label)
		assert.Equal(t, "B", m.Sections[0].Rows[1].Label)
		require.Len(t, m.Sections[0].Rows[0].Seats, 3)
		assert.Equal(t, "section-1-row-1-seat-1", m.Sections[0].Rows[0].Seats[0].Code)
		assert.Equal(t, "vip", m.Sections[0].Rows[0].Seats[2].Type)
		assert.Equal(t, CurrentVersion, m.Version)
	})

	t.Run("empty grid yields empty shell", func(t *testing.T) {
		m := ConvertGridToCustomMap(nil)

		assert.Equal(t, LayoutCustom, m.Layout)
		assert.Empty(t, m.Sections)
	})
}

func TestGridConversionSurvivesNormalization(t *testing.T) {
	grid := LegacyGrid{
		{"regular", "vip", "regular", "premium"},
		{"regular", "regular", "regular", "regular"},
		{"premium", "premium", "vip", "vip"},
	}

	normalized := NormalizeCustomSeatMap(ConvertGridToCustomMap(grid))

	require.Len(t, normalized.Sections, 1)
	require.Len(t, normalized.Sections[0].Rows, len(grid))
	for r, row := range normalized.Sections[0].Rows {
		require.Len(t, row.Seats, len(grid[r]), "row %d", r)
		for c, seat := range row.Seats {
			assert.Equal(t, grid[r][c], seat.Type)
		}
	}
}

func TestNormalizeCustomSeatMap(t *testing.T) {
	t.Run("non custom input yields empty canonical map", func(t *testing.T) {
		m := NormalizeCustomSeatMap(nil)

		assert.Equal(t, LayoutCustom, m.Layout)
		assert.Equal(t, CurrentVersion, m.Version)
		assert.Empty(t, m.Sections)
		assert.Equal(t, []string{"regular", "premium", "vip"}, m.SeatTypes.IDs())
	})

	t.Run("drops seats with unknown type and rows emptied by filtering", func(t *testing.T) {
		m := NormalizeCustomSeatMap(&SeatMap{
			Layout: LayoutCustom,
			Sections: []Section{{
				ID:   "stalls",
				Name: "Stalls",
				Rows: []Row{
					{Seats: []Seat{{Code: "s1", Type: "regular"}, {Code: "s2", Type: "ghost"}}},
					{Seats: []Seat{{Code: "s3", Type: "ghost"}}},
					{Seats: nil},
				},
			}},
			SeatTypes: SeatTypes{{ID: "regular", Label: "Regular"}},
		})

		require.Len(t, m.Sections, 1)
		rows := m.Sections[0].Rows
		require.Len(t, rows, 2)
		require.Len(t, rows[0].Seats, 1)
		assert.Equal(t, "s1", rows[0].Seats[0].Code)
		// Third input row had no seats at all: kept as an aisle.
		assert.Empty(t, rows[1].Seats)
	})

	t.Run("clears unknown group and prefixes labels for known groups", func(t *testing.T) {
		m := NormalizeCustomSeatMap(&SeatMap{
			Layout: LayoutCustom,
			Groups: []Group{{ID: "box-a", Name: "Box A"}},
			Sections: []Section{{
				Rows: []Row{{Seats: []Seat{
					{Code: "s1", Type: "regular", SeatLabel: "1", Group: "box-a"},
					{Code: "s2", Type: "regular", SeatLabel: "BOXA-2", Group: "box-a"},
					{Code: "s3", Type: "regular", SeatLabel: "3", Group: "phantom"},
				}}},
			}},
			SeatTypes: SeatTypes{{ID: "regular", Label: "Regular"}},
		})

		seats := m.Sections[0].Rows[0].Seats
		require.Len(t, seats, 3)
		assert.Equal(t, "BOXA-1", seats[0].SeatLabel)
		assert.Equal(t, "BOXA-2", seats[1].SeatLabel, "already prefixed label is not doubled")
		assert.Equal(t, "", seats[2].Group, "unknown group reference is cleared")
		require.Len(t, m.Groups, 1)
		assert.Equal(t, "BOXA", m.Groups[0].Prefix)
	})

	t.Run("synthesizes missing ids and codes", func(t *testing.T) {
		m := NormalizeCustomSeatMap(&SeatMap{
			Layout: LayoutCustom,
			Sections: []Section{{
				Rows: []Row{{Seats: []Seat{{Type: "vip"}}}},
			}},
			SeatTypes: SeatTypes{{ID: "vip", Label: "VIP"}},
		})

		require.Len(t, m.Sections, 1)
		assert.Equal(t, "section-1", m.Sections[0].ID)
		require.Len(t, m.Sections[0].Rows, 1)
		assert.Equal(t, "section-1-row-1", m.Sections[0].Rows[0].ID)
		assert.Equal(t, "A", m.Sections[0].Rows[0].Label)
		assert.Equal(t, "section-1-row-1-seat-1", m.Sections[0].Rows[0].Seats[0].Code)
	})

	t.Run("version one upgrades to current", func(t *testing.T) {
		m := NormalizeCustomSeatMap(&SeatMap{
			Layout:  LayoutCustom,
			Version: 1,
			Sections: []Section{{
				Rows: []Row{{Seats: []Seat{{Type: "regular"}}}},
			}},
		})

		assert.Equal(t, CurrentVersion, m.Version)
	})
}

func TestBuildCustomSeatLookup(t *testing.T) {
	m := &SeatMap{
		Layout: LayoutCustom,
		Sections: []Section{{
			Name: "Balcony",
			Rows: []Row{{
				Label: "A",
				Seats: []Seat{
					{Code: "balcony-a1", Type: "vip", SeatLabel: "1", Group: "box-a"},
					{Type: "vip"},
				},
			}},
		}},
	}

	lookup := BuildCustomSeatLookup(m)

	require.Len(t, lookup, 1, "seats without a code are skipped")
	info := lookup["balcony-a1"]
	assert.Equal(t, "vip", info.Type)
	assert.Equal(t, "Balcony", info.Section)
	assert.Equal(t, "A", info.RowLabel)
	assert.Equal(t, "box-a", info.Group)
}

func TestUsedSeatTypes(t *testing.T) {
	t.Run("legacy grid", func(t *testing.T) {
		used := UsedSeatTypes(RawSeatMap{Kind: KindGrid, Grid: LegacyGrid{{"regular", "vip"}, {"regular"}}})

		assert.Equal(t, map[string]bool{"regular": true, "vip": true}, used)
	})

	t.Run("custom map only counts surviving seats", func(t *testing.T) {
		used := UsedSeatTypes(RawSeatMap{Kind: KindCustom, Custom: &SeatMap{
			Layout: LayoutCustom,
			Sections: []Section{{
				Rows: []Row{{Seats: []Seat{{Code: "s1", Type: "vip"}, {Code: "s2", Type: "ghost"}}}},
			}},
			SeatTypes: SeatTypes{{ID: "vip", Label: "VIP"}},
		}})

		assert.Equal(t, map[string]bool{"vip": true}, used)
	})
}
