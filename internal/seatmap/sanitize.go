package seatmap

import (
	"fmt"
	"strings"
)

// Submission is the untrusted payload an editing client sends when saving a
// seat map. It mirrors the canonical shape minus layout/version, which the
// sanitizer stamps itself.
type Submission struct {
	Sections  []Section `json:"sections"`
	SeatTypes SeatTypes `json:"seat_types"`
	Groups    []Group   `json:"groups"`
	Settings  Settings  `json:"settings"`
}

// SanitizeSubmission validates and rewrites a client submission into the
// canonical version-2 document. This is the only path that may persist a
// seat map.
//
// Grouped seats are relabeled "<PREFIX>-<n>" with a per-group counter and
// get their code synthesized from "<group-id>-<n>", overriding whatever the
// client sent. Seat codes are unique across the whole map; collisions get a
// numeric suffix. Rows and sections left without seats are dropped.
func SanitizeSubmission(payload *Submission) (*SeatMap, error) {
	if payload == nil {
		return nil, NewValidationError(KindInvalidMap, "invalid seat map data received")
	}
	if len(payload.Sections) == 0 {
		return nil, NewValidationError(KindEmptyMap, "add at least one section with seats before saving")
	}

	seatTypes := normalizeSeatTypeEntries(payload.SeatTypes)
	if len(seatTypes) == 0 {
		return nil, NewValidationError(KindEmptyTypes, "create at least one ticket type before saving")
	}

	groups, groupByID := normalizeGroups(payload.Groups)
	groupCounts := make(map[string]int, len(groups))
	settings := NormalizeSettings(payload.Settings)

	sections := make([]Section, 0, len(payload.Sections))
	seatCodes := make(map[string]bool)
	totalSeats := 0

	for sectionIndex, section := range payload.Sections {
		sectionID := Slugify(section.ID)
		if sectionID == "" {
			sectionID = fmt.Sprintf("section-%d", sectionIndex+1)
		}
		sectionName := strings.TrimSpace(section.Name)
		if sectionName == "" {
			sectionName = fmt.Sprintf("Section %d", sectionIndex+1)
		}

		rows := make([]Row, 0, len(section.Rows))

		for rowIndex, row := range section.Rows {
			rowLabel := strings.TrimSpace(row.Label)
			if rowLabel == "" {
				rowLabel = RowLabel(rowIndex)
			}
			offset := row.Offset
			if offset < 0 {
				offset = 0
			}

			seats := make([]Seat, 0, len(row.Seats))

			for seatIndex, seat := range row.Seats {
				seatType := SanitizeKey(seat.Type)
				if seatType == "" || !seatTypes.Has(seatType) {
					continue
				}

				var seatLabel, codeBase string
				groupID := Slugify(seat.Group)

				if _, known := groupByID[groupID]; groupID != "" && known {
					groupCounts[groupID]++
					count := groupCounts[groupID]
					seatLabel = fmt.Sprintf("%s-%d", groupByID[groupID].Prefix, count)
					codeBase = Slugify(fmt.Sprintf("%s-%d", groupID, count))
				} else {
					groupID = ""
					seatLabel = strings.TrimSpace(seat.SeatLabel)
					if seatLabel == "" {
						seatLabel = fmt.Sprintf("%d", seatIndex+1)
					}
					codeBase = Slugify(seat.Code)
					if codeBase == "" {
						codeBase = Slugify(fmt.Sprintf("%s-row-%d-seat-%d", sectionID, rowIndex+1, seatIndex+1))
					}
				}

				code := codeBase
				for suffix := 1; code == "" || seatCodes[code]; {
					suffix++
					code = Slugify(fmt.Sprintf("%s-%d", codeBase, suffix))
				}

				seatCodes[code] = true
				totalSeats++

				seats = append(seats, Seat{
					Code:      code,
					Type:      seatType,
					SeatLabel: seatLabel,
					Group:     groupID,
				})
			}

			if len(seats) == 0 {
				continue
			}

			rows = append(rows, Row{
				ID:     fmt.Sprintf("%s-row-%d", sectionID, rowIndex+1),
				Label:  rowLabel,
				Offset: offset,
				Seats:  seats,
			})
		}

		if len(rows) == 0 {
			continue
		}

		sections = append(sections, Section{ID: sectionID, Name: sectionName, Rows: rows})
	}

	if len(sections) == 0 || totalSeats == 0 {
		return nil, NewValidationError(KindEmptyMap, "add at least one section with seats before saving")
	}

	return &SeatMap{
		Layout:    LayoutCustom,
		Version:   CurrentVersion,
		Sections:  sections,
		SeatTypes: seatTypes,
		Groups:    groups,
		Settings:  settings,
	}, nil
}
