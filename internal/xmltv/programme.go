package xmltv

import (
	"strconv"
	"strings"
	"time"

	"github.com/snapetech/guidescan/internal/xmlcur"
)

// creditRoles are the <credits> children that produce a credit, in the tag
// name used by the document. Anything else under <credits> is skipped.
var creditRoles = map[string]bool{
	"director":    true,
	"actor":       true,
	"writer":      true,
	"adapter":     true,
	"producer":    true,
	"composer":    true,
	"editor":      true,
	"presenter":   true,
	"commentator": true,
	"guest":       true,
}

// programmeBuilder owns all mutable state of one programme decode pass.
// Nothing escapes until build() returns the finished record.
type programmeBuilder struct {
	lang    string
	p       Programme
	episode *Episode
}

func (b *programmeBuilder) ensureEpisode() *Episode {
	if b.episode == nil {
		b.episode = &Episode{}
	}
	return b.episode
}

func (b *programmeBuilder) setProviderID(provider, id string) {
	if b.p.ProviderIDs == nil {
		b.p.ProviderIDs = make(map[string]string)
	}
	b.p.ProviderIDs[provider] = id
}

func (b *programmeBuilder) setSeriesProviderID(provider, id string) {
	if b.p.SeriesProviderIDs == nil {
		b.p.SeriesProviderIDs = make(map[string]string)
	}
	b.p.SeriesProviderIDs[provider] = id
}

func (b *programmeBuilder) build() Programme {
	if b.episode != nil {
		b.episode.SubTitle = b.p.SubTitle
		b.p.Episode = b.episode
	}
	return b.p
}

// decodeProgramme walks the children of the <programme> element the cursor
// is on and returns the finished record. The element is fully consumed on
// return. Malformed children never fail the record; they leave their field
// at its zero value.
func decodeProgramme(c *xmlcur.Cursor, lang, channelID string, start, stop time.Time) (Programme, error) {
	b := &programmeBuilder{lang: lang}
	b.p.ChannelID = channelID
	b.p.Start = start
	b.p.Stop = stop

	ok, err := c.FirstChild()
	for err == nil && ok {
		// advanced means the handler moved the walk itself: the cursor is
		// either on the next child to dispatch or past the programme close.
		advanced := false
		switch c.Name() {
		case "title":
			advanced, err = b.resolveOne(c, &b.p.Title)
		case "sub-title":
			advanced, err = b.resolveOne(c, &b.p.SubTitle)
		case "desc":
			advanced, err = b.resolveOne(c, &b.p.Description)
		case "category":
			advanced, err = b.resolveMany(c, &b.p.Categories)
		case "country":
			advanced, err = b.resolveMany(c, &b.p.Countries)
		case "date":
			err = b.handleDate(c)
		case "icon":
			err = b.handleIcon(c)
		case "episode-num":
			err = b.handleEpisodeNum(c)
		case "new":
			b.p.IsNew = true
			err = c.Skip()
		case "live":
			b.p.IsLive = true
			err = c.Skip()
		case "premiere":
			b.p.IsPremiere = true
			err = c.Skip()
		case "previously-shown":
			err = b.handlePreviouslyShown(c)
		case "quality":
			err = b.handleQuality(c)
		case "star-rating":
			err = b.handleStarRating(c)
		case "rating":
			err = b.handleRating(c)
		case "credits":
			err = b.handleCredits(c)
		default:
			err = c.Skip()
		}
		if err != nil {
			break
		}
		if advanced {
			ok = c.OnElement()
		} else {
			ok, err = c.NextSibling()
		}
	}
	if err != nil {
		return Programme{}, err
	}
	return b.build(), nil
}

func (b *programmeBuilder) resolveOne(c *xmlcur.Cursor, dst *string) (bool, error) {
	pairs, err := collectRun(c)
	if err != nil {
		return false, err
	}
	*dst = pickText(pairs, b.lang)
	return true, nil
}

func (b *programmeBuilder) resolveMany(c *xmlcur.Cursor, dst *[]string) (bool, error) {
	pairs, err := collectRun(c)
	if err != nil {
		return false, err
	}
	*dst = append(*dst, filterTexts(pairs, b.lang)...)
	return true, nil
}

func (b *programmeBuilder) handleDate(c *xmlcur.Cursor) error {
	text, err := c.Text()
	if err != nil {
		return err
	}
	if t, perr := ParseDate(text); perr == nil {
		b.p.CopyrightDate = t
	}
	return nil
}

// handleIcon keeps the first icon unconditionally; later icons replace it
// only when wider than tall, so a banner wins over a poster.
func (b *programmeBuilder) handleIcon(c *xmlcur.Cursor) error {
	icon := readIcon(c)
	if err := c.Skip(); err != nil {
		return err
	}
	if icon.empty() {
		return nil
	}
	if b.p.Icon == nil || icon.Width > icon.Height {
		b.p.Icon = &icon
	}
	return nil
}

func (b *programmeBuilder) handleEpisodeNum(c *xmlcur.Cursor) error {
	system, _ := c.Attr("system")
	text, err := c.Text()
	if err != nil {
		return err
	}
	b.applyEpisodeNum(system, text)
	return nil
}

// handlePreviouslyShown reads the optional start attribute. A parseable
// start only marks the programme as a repeat when it differs from the
// programme's own start; an absent attribute always marks it.
func (b *programmeBuilder) handlePreviouslyShown(c *xmlcur.Cursor) error {
	v, has := c.Attr("start")
	if !has {
		b.p.IsPreviouslyShown = true
	} else if t, err := ParseDate(v); err == nil && !t.Equal(b.p.Start) {
		b.p.PreviouslyShown = t
		b.p.IsPreviouslyShown = true
	}
	return c.Skip()
}

func (b *programmeBuilder) handleQuality(c *xmlcur.Cursor) error {
	text, err := c.Text()
	if err != nil {
		return err
	}
	if text != "" {
		b.p.Quality = text
	}
	return nil
}

// handleStarRating descends to the <value> child, shaped "N/M", and parses
// the substring starting AT the slash. The slash is kept in the parsed text
// on purpose: this mirrors the long-standing upstream behavior, and since
// strconv rejects a leading slash the field stays unset for "N/M" input.
func (b *programmeBuilder) handleStarRating(c *xmlcur.Cursor) error {
	value, err := childValueText(c)
	if err != nil {
		return err
	}
	idx := strings.Index(value, "/")
	if idx < 0 {
		return nil
	}
	if f, perr := strconv.ParseFloat(value[idx:], 64); perr == nil {
		b.p.StarRating = &f
	}
	return nil
}

func (b *programmeBuilder) handleRating(c *xmlcur.Cursor) error {
	system, _ := c.Attr("system")
	value, err := childValueText(c)
	if err != nil {
		return err
	}
	if value != "" {
		b.p.Rating = &Rating{Value: value, System: system}
	}
	return nil
}

// childValueText consumes the current element and returns the text of its
// first <value> child, or "" when there is none.
func childValueText(c *xmlcur.Cursor) (string, error) {
	var value string
	ok, err := c.FirstChild()
	for err == nil && ok {
		if c.Name() == "value" && value == "" {
			value, err = c.Text()
			if err != nil {
				break
			}
		}
		ok, err = c.NextSibling()
	}
	return value, err
}

// handleCredits walks the credits subtree and appends one credit per
// recognized role child, in document order. Empty names are dropped.
func (b *programmeBuilder) handleCredits(c *xmlcur.Cursor) error {
	ok, err := c.FirstChild()
	for err == nil && ok {
		role := c.Name()
		if !creditRoles[role] {
			ok, err = c.NextSibling()
			continue
		}
		var name string
		name, err = c.Text()
		if err != nil {
			break
		}
		if name != "" {
			b.p.Credits = append(b.p.Credits, Credit{Role: role, Name: name})
		}
		ok, err = c.NextSibling()
	}
	return err
}

// readIcon reads src/width/height off the element the cursor is on.
// Missing or unparsable dimensions read as zero.
func readIcon(c *xmlcur.Cursor) Icon {
	var icon Icon
	icon.Source, _ = c.Attr("src")
	if v, has := c.Attr("width"); has {
		if n, err := strconv.Atoi(v); err == nil {
			icon.Width = n
		}
	}
	if v, has := c.Attr("height"); has {
		if n, err := strconv.Atoi(v); err == nil {
			icon.Height = n
		}
	}
	return icon
}
