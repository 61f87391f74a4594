package xmltv

import (
	"strconv"
	"strings"

	"github.com/snapetech/guidescan/internal/xmlcur"
)

// decodeChannel walks the <channel> element the cursor is on. The element is
// fully consumed on return. ok is false when the channel must be suppressed:
// no id attribute, or no display name survived resolution.
func decodeChannel(c *xmlcur.Cursor, lang string) (ch Channel, ok bool, err error) {
	id, _ := c.Attr("id")
	if strings.TrimSpace(id) == "" {
		return Channel{}, false, c.Skip()
	}
	ch.ID = id

	more, err := c.FirstChild()
	for err == nil && more {
		advanced := false
		switch c.Name() {
		case "display-name":
			var pairs []langValue
			pairs, err = collectRun(c)
			if err != nil {
				break
			}
			ch.DisplayName = pickText(pairs, lang)
			// Every variant feeds the channel-number heuristic; the last
			// variant that parses as a number wins.
			for _, p := range pairs {
				if n, isNum := channelNumber(p.Text); isNum {
					ch.Number = n
				}
			}
			advanced = true
		case "icon":
			icon := readIcon(c)
			err = c.Skip()
			if err == nil && !icon.empty() {
				ch.Icon = &icon
			}
		case "url":
			ch.URL, err = c.Text()
		default:
			err = c.Skip()
		}
		if err != nil {
			break
		}
		if advanced {
			more = c.OnElement()
		} else {
			more, err = c.NextSibling()
		}
	}
	if err != nil {
		return Channel{}, false, err
	}
	if strings.TrimSpace(ch.DisplayName) == "" {
		return Channel{}, false, nil
	}
	return ch, true, nil
}

// channelNumber interprets a display-name variant as a channel number:
// "5-1" and "5_1" normalize to "5.1". Text that does not parse as a plain
// number is not a channel number.
func channelNumber(text string) (string, bool) {
	n := strings.ReplaceAll(text, "-", ".")
	n = strings.ReplaceAll(n, "_", ".")
	if _, err := strconv.ParseFloat(n, 64); err != nil {
		return "", false
	}
	return n, true
}
