package seatmap

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
)

var (
	legacySeatIDPattern = regexp.MustCompile(`(?i)^R(\d+)S(\d+)$`)
	seatIdentifierPattern = regexp.MustCompile(`^([A-Z]+)(\d+)$`)
	nonLetterPattern      = regexp.MustCompile(`[^A-Z]`)
	nonAlnumPattern       = regexp.MustCompile(`[^A-Za-z0-9]`)
	nonKeyCharPattern     = regexp.MustCompile(`[^a-z0-9_\-]`)
)

// SeatPosition is a parsed legacy-grid seat identifier.
type SeatPosition struct {
	SeatID string `json:"seat_id"`
	Row    int    `json:"row"`
	Column int    `json:"column"`
}

// RowLabel converts a zero-based row index into its display label using
// bijective base-26 (0 -> "A", 25 -> "Z", 26 -> "AA", 701 -> "ZZ", 702 -> "AAA").
// Negative indices yield an empty string.
func RowLabel(index int) string {
	if index < 0 {
		return ""
	}

	var b []byte
	for {
		remainder := index % 26
		b = append([]byte{byte('A' + remainder)}, b...)
		index = index/26 - 1
		if index < 0 {
			break
		}
	}

	return string(b)
}

// RowIndexFromLabel is the inverse of RowLabel. Characters outside A-Z are
// stripped (after uppercasing); if nothing usable remains it returns -1.
func RowIndexFromLabel(label string) int {
	label = nonLetterPattern.ReplaceAllString(strings.ToUpper(label), "")
	if label == "" {
		return -1
	}

	value := 0
	for i := 0; i < len(label); i++ {
		value = value*26 + int(label[i]-'A'+1)
	}

	return value - 1
}

// FormatSeatIdentifier builds the user-facing identifier for a legacy-grid
// seat from zero-based indices, e.g. (0, 0) -> "A1".
func FormatSeatIdentifier(row, column int) string {
	return RowLabel(row) + strconv.Itoa(column+1)
}

// ParseSeatIdentifier splits an identifier like "A1" or "AB12" back into
// zero-based row/column indices. Returns nil if the identifier does not match
// or resolves to a negative position.
func ParseSeatIdentifier(seatID string) *SeatPosition {
	seatID = strings.ToUpper(strings.TrimSpace(seatID))

	matches := seatIdentifierPattern.FindStringSubmatch(seatID)
	if matches == nil {
		return nil
	}

	row := RowIndexFromLabel(matches[1])
	number, err := strconv.Atoi(matches[2])
	if err != nil {
		return nil
	}
	column := number - 1

	if row < 0 || column < 0 {
		return nil
	}

	return &SeatPosition{SeatID: seatID, Row: row, Column: column}
}

// ConvertLegacySeatID canonicalizes a stored seat id. "R<row>S<col>"
// identifiers (1-based) from the oldest schema become the "A1" form; ids
// containing a separator are treated as custom-layout seat codes and
// slug-normalized; everything else is uppercased. The function is idempotent.
func ConvertLegacySeatID(seatID string) string {
	seatID = strings.TrimSpace(seatID)

	if matches := legacySeatIDPattern.FindStringSubmatch(seatID); matches != nil {
		row, _ := strconv.Atoi(matches[1])
		col, _ := strconv.Atoi(matches[2])
		if row >= 1 && col >= 1 {
			return FormatSeatIdentifier(row-1, col-1)
		}
	}

	if strings.Contains(seatID, "-") {
		return Slugify(seatID)
	}

	return strings.ToUpper(seatID)
}

// Slugify normalizes an arbitrary string into a seat-code / id slug
// (lowercase, hyphen separated).
func Slugify(s string) string {
	return slug.Make(s)
}

// SanitizeKey normalizes a seat-type key: lowercased with everything outside
// [a-z0-9_-] removed. Unlike Slugify it never introduces separators.
func SanitizeKey(s string) string {
	return nonKeyCharPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "")
}

// stripNonAlnum drops every character outside A-Za-z0-9. Used when deriving
// group prefixes.
func stripNonAlnum(s string) string {
	return nonAlnumPattern.ReplaceAllString(s, "")
}
