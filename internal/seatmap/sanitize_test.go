package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() *Submission {
	return &Submission{
		Sections: []Section{{
			ID:   "stalls",
			Name: "Stalls",
			Rows: []Row{{Seats: []Seat{
				{Code: "stalls-a1", Type: "regular", SeatLabel: "1"},
				{Code: "stalls-a2", Type: "regular", SeatLabel: "2"},
			}}},
		}},
		SeatTypes: SeatTypes{{ID: "regular", Label: "Regular"}},
	}
}

func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	require.Error(t, err)
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, kind, verr.Kind)
}

func TestSanitizeSubmissionRejections(t *testing.T) {
	t.Run("nil payload", func(t *testing.T) {
		_, err := SanitizeSubmission(nil)
		requireKind(t, err, KindInvalidMap)
	})

	t.Run("no sections", func(t *testing.T) {
		_, err := SanitizeSubmission(&Submission{SeatTypes: SeatTypes{{ID: "regular", Label: "Regular"}}})
		requireKind(t, err, KindEmptyMap)
	})

	t.Run("no seat types", func(t *testing.T) {
		sub := validSubmission()
		sub.SeatTypes = nil
		_, err := SanitizeSubmission(sub)
		requireKind(t, err, KindEmptyTypes)
	})

	t.Run("zero surviving seats", func(t *testing.T) {
		sub := validSubmission()
		for i := range sub.Sections[0].Rows[0].Seats {
			sub.Sections[0].Rows[0].Seats[i].Type = "ghost"
		}
		_, err := SanitizeSubmission(sub)
		requireKind(t, err, KindEmptyMap)
	})
}

func TestSanitizeSubmissionAcceptsValidMap(t *testing.T) {
	m, err := SanitizeSubmission(validSubmission())

	require.NoError(t, err)
	assert.Equal(t, LayoutCustom, m.Layout)
	assert.Equal(t, CurrentVersion, m.Version)
	require.Len(t, m.Sections, 1)
	assert.Equal(t, "stalls", m.Sections[0].ID)
	assert.Equal(t, 2, m.TotalSeats())
	assert.Equal(t, 60, m.Settings.SeatSize)
}

func TestSanitizeSubmissionGroupLabeling(t *testing.T) {
	sub := &Submission{
		Sections: []Section{{
			Rows: []Row{{Seats: []Seat{
				{Code: "ignored-1", Type: "vip", SeatLabel: "whatever", Group: "vip-box"},
				{Code: "ignored-2", Type: "vip", SeatLabel: "also ignored", Group: "vip-box"},
				{Code: "plain", Type: "vip", SeatLabel: "solo"},
			}}},
		}},
		SeatTypes: SeatTypes{{ID: "vip", Label: "VIP"}},
		Groups:    []Group{{ID: "vip-box", Name: "VIP Box", Prefix: "VIP"}},
	}

	m, err := SanitizeSubmission(sub)
	require.NoError(t, err)

	seats := m.Sections[0].Rows[0].Seats
	require.Len(t, seats, 3)
	assert.Equal(t, "VIP-1", seats[0].SeatLabel)
	assert.Equal(t, "vip-box-1", seats[0].Code)
	assert.Equal(t, "VIP-2", seats[1].SeatLabel)
	assert.Equal(t, "vip-box-2", seats[1].Code)
	assert.Equal(t, "solo", seats[2].SeatLabel)
	assert.Equal(t, "", seats[2].Group)
}

func TestSanitizeSubmissionCodeUniqueness(t *testing.T) {
	t.Run("explicit duplicate codes get suffixed", func(t *testing.T) {
		sub := validSubmission()
		sub.Sections[0].Rows[0].Seats[1].Code = "stalls-a1"

		m, err := SanitizeSubmission(sub)
		require.NoError(t, err)

		seats := m.Sections[0].Rows[0].Seats
		assert.Equal(t, "stalls-a1", seats[0].Code)
		assert.Equal(t, "stalls-a1-2", seats[1].Code)
	})

	t.Run("two omitted codes in the same position pattern stay unique", func(t *testing.T) {
		sub := &Submission{
			Sections: []Section{
				{ID: "main", Rows: []Row{{Seats: []Seat{{Type: "regular"}}}}},
				{ID: "main", Rows: []Row{{Seats: []Seat{{Type: "regular"}}}}},
			},
			SeatTypes: SeatTypes{{ID: "regular", Label: "Regular"}},
		}

		m, err := SanitizeSubmission(sub)
		require.NoError(t, err)

		codes := map[string]bool{}
		for _, section := range m.Sections {
			for _, row := range section.Rows {
				for _, seat := range row.Seats {
					require.False(t, codes[seat.Code], "duplicate code %q", seat.Code)
					codes[seat.Code] = true
				}
			}
		}
		require.Len(t, codes, 2)
	})
}

func TestSanitizeSubmissionDropsEmptyRowsAndSections(t *testing.T) {
	sub := &Submission{
		Sections: []Section{
			{
				ID: "front",
				Rows: []Row{
					{Seats: []Seat{{Type: "regular"}}},
					{Seats: nil},
				},
			},
			{ID: "ghost-town", Rows: []Row{{Seats: []Seat{{Type: "ghost"}}}}},
		},
		SeatTypes: SeatTypes{{ID: "regular", Label: "Regular"}},
	}

	m, err := SanitizeSubmission(sub)
	require.NoError(t, err)

	require.Len(t, m.Sections, 1)
	assert.Equal(t, "front", m.Sections[0].ID)
	require.Len(t, m.Sections[0].Rows, 1)
}

func TestSanitizeSubmissionClampsSettings(t *testing.T) {
	sub := validSubmission()
	sub.Settings = Settings{SeatSize: 999}

	m, err := SanitizeSubmission(sub)
	require.NoError(t, err)
	assert.Equal(t, 160, m.Settings.SeatSize)
}
