package xmltv

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// ErrInvalidDate is returned by ParseDate for text that is not an XMLTV date.
var ErrInvalidDate = errors.New("xmltv: invalid date")

// XMLTV dates are 4 to 14 digits, optionally followed by a numeric UTC
// offset ("20200728173000 +0200"). Textual zone abbreviations ("BST") are
// not offsets and make the whole value unparsable.
var dateRe = regexp.MustCompile(`^(\d{4,14})(\s([+-]\d{1,4}))?$`)

// datePad supplies defaults for missing trailing fields: month and day
// default to 01, time components to 00.
const datePad = "20000101000000"

const (
	dateLayout       = "20060102150405"
	dateOffsetLayout = "20060102150405 -07:00"
)

// ParseDate converts an XMLTV date to an exact UTC instant. A value with no
// offset is taken as UTC. Truncated values are padded ("200209" reads as
// 2002-09-01 00:00:00).
func ParseDate(s string) (time.Time, error) {
	m := dateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, ErrInvalidDate
	}
	digits := m[1] + datePad[len(m[1]):]
	offset := m[3]
	if offset == "" {
		t, err := time.Parse(dateLayout, digits)
		if err != nil {
			return time.Time{}, ErrInvalidDate
		}
		return t, nil
	}
	// Only ±HHMM offsets get the colon treatment; shorter ones fall through
	// to the strict layout and fail, which reads the whole date as invalid.
	if len(offset) == 5 {
		offset = offset[:3] + ":" + offset[3:]
	}
	t, err := time.Parse(dateOffsetLayout, digits+" "+offset)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t.UTC(), nil
}

// StandardizeDate is the lenient companion to ParseDate: it always emits a
// 14-digit date plus offset, defaulting the offset to +0000, and tolerates
// malformed input by padding whatever digits it got instead of failing.
func StandardizeDate(s string) string {
	parts := strings.SplitN(strings.TrimSpace(s), " ", 2)
	digits := parts[0]
	offset := "+0000"
	if len(parts) == 2 && parts[1] != "" {
		offset = parts[1]
	}
	if len(digits) < len(datePad) {
		digits += datePad[len(digits):]
	}
	return digits + " " + offset
}
