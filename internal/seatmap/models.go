package seatmap

import (
	"bytes"
	"encoding/json"
	"strings"
)

// LayoutCustom tags the structured seat-map document. Anything else stored
// for an event is assumed to be the legacy 2-D grid.
const LayoutCustom = "custom"

// CurrentVersion is the canonical schema version every normalized map is
// migrated to.
const CurrentVersion = 2

// Seat is a single bookable seat inside a row. Code is the stable unique id
// within the whole map; Type references a SeatType id; Group references a
// Group id or is empty.
type Seat struct {
	Code      string `json:"code"`
	Type      string `json:"type"`
	SeatLabel string `json:"seat_label"`
	Group     string `json:"group"`
}

// Row is an ordered run of seats. A row with zero seats is a deliberate
// spacer (aisle/walkway), not an error. Offset indents the row by that many
// seat units.
type Row struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Offset int    `json:"offset"`
	Seats  []Seat `json:"seats"`
}

// Section groups rows into a named seating bank.
type Section struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Rows []Row  `json:"rows"`
}

// Group is a named seat cluster whose members get auto-generated
// "<PREFIX>-<n>" labels.
type Group struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
}

// Settings holds designer presentation settings.
type Settings struct {
	SeatSize int `json:"seat_size"`
}

// SeatType is one entry of the ordered seat-type list.
type SeatType struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// SeatTypes is the ordered seat-type list of a map. Insertion order is a
// first-class property: the first entry is the default type. It serializes
// as a JSON object ({"regular":"Regular", ...}) for compatibility with the
// stored document shape, and deserializes from either that object form or a
// list of {id,label} entries.
type SeatTypes []SeatType

// Has reports whether id is a known seat type.
func (t SeatTypes) Has(id string) bool {
	for _, st := range t {
		if st.ID == id {
			return true
		}
	}
	return false
}

// Label returns the display label for id, falling back to the id itself.
func (t SeatTypes) Label(id string) string {
	for _, st := range t {
		if st.ID == id {
			return st.Label
		}
	}
	return id
}

// Default returns the id of the default seat type: the first entry of the
// ordered list, or "" when the list is empty.
func (t SeatTypes) Default() string {
	if len(t) == 0 {
		return ""
	}
	return t[0].ID
}

// IDs returns the type ids in order.
func (t SeatTypes) IDs() []string {
	ids := make([]string, 0, len(t))
	for _, st := range t {
		ids = append(ids, st.ID)
	}
	return ids
}

// MarshalJSON writes the ordered object form.
func (t SeatTypes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, st := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(st.ID)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(st.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts either the object form (key order preserved) or a
// list of {id,label} entries.
func (t *SeatTypes) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*t = nil
		return nil
	}

	if trimmed[0] == '[' {
		var entries []SeatType
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return err
		}
		*t = entries
		return nil
	}

	// Object form: walk the tokens so key order survives decoding.
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil { // consume '{'
		return err
	}

	var parsed SeatTypes
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var label string
		if err := dec.Decode(&label); err != nil {
			return err
		}
		parsed = append(parsed, SeatType{ID: key, Label: label})
	}

	*t = parsed
	return nil
}

// SeatMap is the canonical ("custom v2") seat-map document.
type SeatMap struct {
	Layout    string    `json:"layout"`
	Version   int       `json:"version"`
	Sections  []Section `json:"sections"`
	SeatTypes SeatTypes `json:"seat_types"`
	Groups    []Group   `json:"groups"`
	Settings  Settings  `json:"settings"`
}

// TotalSeats counts bookable seats across all sections.
func (m *SeatMap) TotalSeats() int {
	total := 0
	for _, section := range m.Sections {
		for _, row := range section.Rows {
			total += len(row.Seats)
		}
	}
	return total
}

// SeatInfo is one entry of the flattened seat lookup built from a canonical
// map, keyed by seat code.
type SeatInfo struct {
	Type      string `json:"type"`
	Section   string `json:"section"`
	RowLabel  string `json:"row_label"`
	SeatLabel string `json:"seat_label"`
	Group     string `json:"group"`
}

// LegacyGrid is the oldest stored shape: row -> column -> seat-type id.
type LegacyGrid [][]string

// At reports the seat type at (row, col) and whether the cell exists.
func (g LegacyGrid) At(row, col int) (string, bool) {
	if row < 0 || row >= len(g) {
		return "", false
	}
	if col < 0 || col >= len(g[row]) {
		return "", false
	}
	return g[row][col], true
}

// MapKind discriminates the stored seat-map shapes.
type MapKind int

const (
	KindNone MapKind = iota
	KindGrid
	KindCustom
)

// RawSeatMap is the tagged union of everything an event may have stored:
// nothing, a legacy grid, or a custom document (v1 or v2).
type RawSeatMap struct {
	Kind   MapKind
	Custom *SeatMap
	Grid   LegacyGrid
}

// DetectSeatMap classifies a stored seat-map payload. A JSON object tagged
// layout=="custom" is a custom document; a JSON array is the legacy grid;
// anything else (including empty input) is KindNone.
func DetectSeatMap(data []byte) RawSeatMap {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return RawSeatMap{Kind: KindNone}
	}

	switch trimmed[0] {
	case '{':
		var doc SeatMap
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return RawSeatMap{Kind: KindNone}
		}
		if !strings.EqualFold(doc.Layout, LayoutCustom) {
			return RawSeatMap{Kind: KindNone}
		}
		return RawSeatMap{Kind: KindCustom, Custom: &doc}
	case '[':
		var grid LegacyGrid
		if err := json.Unmarshal(trimmed, &grid); err != nil {
			return RawSeatMap{Kind: KindNone}
		}
		return RawSeatMap{Kind: KindGrid, Grid: grid}
	default:
		return RawSeatMap{Kind: KindNone}
	}
}

// IsCustomSeatMap reports whether the stored payload is a structured custom
// document.
func IsCustomSeatMap(data []byte) bool {
	return DetectSeatMap(data).Kind == KindCustom
}
