package seatmap

import (
	"fmt"
	"strings"
)

const (
	minSeatSize     = 24
	maxSeatSize     = 160
	defaultSeatSize = 60
)

// DefaultSeatTypes returns the built-in ticket types used whenever a map has
// none of its own. Order matters: the first entry is the default type.
func DefaultSeatTypes() SeatTypes {
	return SeatTypes{
		{ID: "regular", Label: "Regular"},
		{ID: "premium", Label: "Premium"},
		{ID: "vip", Label: "VIP"},
	}
}

// DefaultSettings returns the designer defaults.
func DefaultSettings() Settings {
	return Settings{SeatSize: defaultSeatSize}
}

// NormalizeSettings clamps designer settings into their supported ranges. A
// non-positive seat size means the client sent nothing and gets the default.
func NormalizeSettings(s Settings) Settings {
	if s.SeatSize <= 0 {
		return DefaultSettings()
	}
	if s.SeatSize < minSeatSize {
		s.SeatSize = minSeatSize
	}
	if s.SeatSize > maxSeatSize {
		s.SeatSize = maxSeatSize
	}
	return s
}

// NormalizeSeatTypes slugifies ids, trims labels, and drops unusable
// entries. Duplicate ids keep their first position but take the later label.
// An empty result falls back to the defaults.
func NormalizeSeatTypes(raw SeatTypes) SeatTypes {
	normalized := normalizeSeatTypeEntries(raw)
	if len(normalized) == 0 {
		return DefaultSeatTypes()
	}
	return normalized
}

// normalizeSeatTypeEntries is NormalizeSeatTypes without the default
// fallback; the submission sanitizer needs to see a genuinely empty result.
func normalizeSeatTypeEntries(raw SeatTypes) SeatTypes {
	var normalized SeatTypes
	index := make(map[string]int)

	for _, entry := range raw {
		id := Slugify(entry.ID)
		label := strings.TrimSpace(entry.Label)
		if id == "" || label == "" {
			continue
		}
		if pos, ok := index[id]; ok {
			normalized[pos].Label = label
			continue
		}
		index[id] = len(normalized)
		normalized = append(normalized, SeatType{ID: id, Label: label})
	}

	return normalized
}

// normalizeGroups canonicalizes the group list: slugified unique ids,
// synthesized names, and derived upper-case alphanumeric prefixes. The
// returned map indexes the canonical groups by id.
func normalizeGroups(raw []Group) ([]Group, map[string]Group) {
	groups := make([]Group, 0, len(raw))
	byID := make(map[string]Group, len(raw))

	for i, g := range raw {
		id := Slugify(g.ID)
		if id == "" {
			id = fmt.Sprintf("group-%d", i+1)
		}
		base := id
		for suffix := 2; ; suffix++ {
			if _, taken := byID[id]; !taken {
				break
			}
			id = Slugify(fmt.Sprintf("%s-%d", base, suffix))
		}

		name := strings.TrimSpace(g.Name)
		if name == "" {
			name = fmt.Sprintf("Group %d", i+1)
		}

		prefix := stripNonAlnum(g.Prefix)
		if prefix == "" {
			prefix = stripNonAlnum(name)
		}
		if prefix == "" {
			prefix = strings.ToUpper(strings.ReplaceAll(id, "-", ""))
		}

		group := Group{ID: id, Name: name, Prefix: strings.ToUpper(prefix)}
		groups = append(groups, group)
		byID[group.ID] = group
	}

	return groups, byID
}

// ConvertGridToCustomMap migrates the legacy row/column grid into the custom
// document shape: one "Main Floor" section, one row per grid row, seat codes
// synthesized from position. An empty grid yields an empty version-1 shell.
func ConvertGridToCustomMap(grid LegacyGrid) *SeatMap {
	if len(grid) == 0 {
		return &SeatMap{Layout: LayoutCustom, Version: 1, Sections: []Section{}}
	}

	section := Section{ID: "section-1", Name: "Main Floor"}

	for rowIndex, row := range grid {
		rowData := Row{
			ID:    fmt.Sprintf("section-1-row-%d", rowIndex+1),
			Label: RowLabel(rowIndex),
			Seats: make([]Seat, 0, len(row)),
		}

		for colIndex, seatType := range row {
			rowData.Seats = append(rowData.Seats, Seat{
				Code:      fmt.Sprintf("section-1-row-%d-seat-%d", rowIndex+1, colIndex+1),
				Type:      SanitizeKey(seatType),
				SeatLabel: fmt.Sprintf("%d", colIndex+1),
			})
		}

		section.Rows = append(section.Rows, rowData)
	}

	return &SeatMap{
		Layout:    LayoutCustom,
		Version:   CurrentVersion,
		Sections:  []Section{section},
		SeatTypes: DefaultSeatTypes(),
		Groups:    []Group{},
		Settings:  DefaultSettings(),
	}
}

// NormalizeCustomSeatMap reconciles a stored custom document (version 1 or
// 2) into the canonical version-2 form. Seats referencing an unknown type
// are dropped; seats referencing an unknown group have the group cleared.
// Rows that were stored empty survive as spacers, rows emptied here by type
// filtering are dropped, and sections left without rows are dropped.
func NormalizeCustomSeatMap(raw *SeatMap) *SeatMap {
	if raw == nil || !strings.EqualFold(raw.Layout, LayoutCustom) {
		return &SeatMap{
			Layout:    LayoutCustom,
			Version:   CurrentVersion,
			Sections:  []Section{},
			SeatTypes: DefaultSeatTypes(),
			Groups:    []Group{},
			Settings:  DefaultSettings(),
		}
	}

	seatTypes := NormalizeSeatTypes(raw.SeatTypes)
	groups, groupByID := normalizeGroups(raw.Groups)
	settings := NormalizeSettings(raw.Settings)

	sections := make([]Section, 0, len(raw.Sections))

	for sectionIndex, section := range raw.Sections {
		if len(section.Rows) == 0 {
			continue
		}

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

				code := Slugify(seat.Code)
				if code == "" {
					code = Slugify(fmt.Sprintf("%s-row-%d-seat-%d", sectionID, rowIndex+1, seatIndex+1))
				}

				seatLabel := strings.TrimSpace(seat.SeatLabel)
				if seatLabel == "" {
					seatLabel = fmt.Sprintf("%d", seatIndex+1)
				}

				groupID := Slugify(seat.Group)
				if groupID != "" {
					group, known := groupByID[groupID]
					if !known {
						groupID = ""
					} else if group.Prefix != "" && !strings.Contains(seatLabel, group.Prefix+"-") {
						seatLabel = group.Prefix + "-" + seatLabel
					}
				}

				seats = append(seats, Seat{
					Code:      code,
					Type:      seatType,
					SeatLabel: seatLabel,
					Group:     groupID,
				})
			}

			// Rows stored without seats are deliberate aisles; rows whose
			// seats were all filtered away are not.
			if len(seats) == 0 && len(row.Seats) > 0 {
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

	version := raw.Version
	if version < CurrentVersion {
		version = CurrentVersion
	}

	return &SeatMap{
		Layout:    LayoutCustom,
		Version:   version,
		Sections:  sections,
		SeatTypes: seatTypes,
		Groups:    groups,
		Settings:  settings,
	}
}

// BuildCustomSeatLookup flattens a normalized map into a code-keyed table
// for O(1) existence and type checks.
func BuildCustomSeatLookup(m *SeatMap) map[string]SeatInfo {
	lookup := make(map[string]SeatInfo)
	if m == nil || !strings.EqualFold(m.Layout, LayoutCustom) {
		return lookup
	}

	for _, section := range m.Sections {
		for _, row := range section.Rows {
			for _, seat := range row.Seats {
				if seat.Code == "" {
					continue
				}
				lookup[seat.Code] = SeatInfo{
					Type:      seat.Type,
					Section:   section.Name,
					RowLabel:  row.Label,
					SeatLabel: seat.SeatLabel,
					Group:     seat.Group,
				}
			}
		}
	}

	return lookup
}

// UsedSeatTypes reports which seat-type ids actually occur in a stored map,
// custom or legacy. Used to scope pricing assignments to types in play.
func UsedSeatTypes(raw RawSeatMap) map[string]bool {
	types := make(map[string]bool)

	switch raw.Kind {
	case KindCustom:
		normalized := NormalizeCustomSeatMap(raw.Custom)
		for _, section := range normalized.Sections {
			for _, row := range section.Rows {
				for _, seat := range row.Seats {
					if key := SanitizeKey(seat.Type); key != "" {
						types[key] = true
					}
				}
			}
		}
	case KindGrid:
		for _, row := range raw.Grid {
			for _, cell := range row {
				if key := SanitizeKey(cell); key != "" {
					types[key] = true
				}
			}
		}
	}

	return types
}
