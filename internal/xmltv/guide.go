// Package xmltv extracts channel and programme records from XMLTV guide
// documents in a single forward-only pass, without building a DOM.
package xmltv

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/snapetech/guidescan/internal/source"
	"github.com/snapetech/guidescan/internal/xmlcur"
)

// Guide reads one XMLTV document from disk. A Guide holds no open resources:
// every listing call opens a fresh cursor, scans front to back, and closes it
// on every exit path. No state survives between calls, so repeated calls with
// the same arguments yield equal results.
type Guide struct {
	path string
	lang string
}

// New returns a guide over the document at path. lang is the preferred
// language code used by every language-resolution decision; it may be empty.
func New(path, lang string) *Guide {
	return &Guide{path: path, lang: lang}
}

// ListChannels returns every channel in document order. Channels without an
// id attribute or a display name are silently omitted.
func (g *Guide) ListChannels() ([]Channel, error) {
	f, err := source.Open(g.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := xmlcur.New(f)
	ok, err := c.SeekDescendant("tv")
	if err != nil || !ok {
		return nil, err
	}

	var out []Channel
	ok, err = c.FirstChild()
	for err == nil && ok {
		if c.Name() != "channel" {
			ok, err = c.NextSibling()
			continue
		}
		ch, keep, cerr := decodeChannel(c, g.lang)
		if cerr != nil {
			return nil, cerr
		}
		if keep {
			out = append(out, ch)
			channelsScanned.Inc()
		}
		ok, err = c.NextSibling()
	}
	return out, err
}

// ListProgrammes returns, in document order, every programme whose channel
// attribute equals channelID (case-insensitive) and whose interval overlaps
// [windowStart, windowEnd). The channel and window checks read only the
// programme's attributes; rejected programmes are skipped without decoding.
//
// Cancellation is cooperative and checked once per programme: once ctx is
// done, remaining programmes are skipped without decoding, but the scan
// still walks to the end of the document rather than breaking out. This
// skip-not-break behavior is long-standing and deliberately kept.
func (g *Guide) ListProgrammes(ctx context.Context, channelID string, windowStart, windowEnd time.Time) ([]Programme, error) {
	f, err := source.Open(g.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := xmlcur.New(f)
	ok, err := c.SeekDescendant("tv")
	if err != nil || !ok {
		return nil, err
	}

	var out []Programme
	ok, err = c.FirstChild()
	for err == nil && ok {
		if c.Name() != "programme" {
			ok, err = c.NextSibling()
			continue
		}
		if ctx.Err() != nil {
			ok, err = c.NextSibling()
			continue
		}
		chAttr, _ := c.Attr("channel")
		if !strings.EqualFold(chAttr, channelID) {
			ok, err = c.NextSibling()
			continue
		}

		// Unparsable or absent start/stop read as the zero instant.
		var start, stop time.Time
		if v, has := c.Attr("start"); has {
			if t, perr := ParseDate(v); perr == nil {
				start = t
			}
		}
		if v, has := c.Attr("stop"); has {
			if t, perr := ParseDate(v); perr == nil {
				stop = t
			}
		}
		if stop.Before(windowStart) || !start.Before(windowEnd) {
			programmesFiltered.Inc()
			ok, err = c.NextSibling()
			continue
		}

		p, derr := decodeProgramme(c, g.lang, chAttr, start, stop)
		if derr != nil {
			return nil, derr
		}
		out = append(out, p)
		programmesScanned.Inc()
		ok, err = c.NextSibling()
	}
	return out, err
}

// ListLanguages scans every element in the document, tallies lang attribute
// values, and returns them by descending occurrence count. Ties keep
// first-seen order. Cancellation follows the same skip-not-break rule as
// ListProgrammes.
func (g *Guide) ListLanguages(ctx context.Context) ([]LanguageCount, error) {
	f, err := source.Open(g.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := xmlcur.New(f)
	counts := make(map[string]int)
	var order []string
	for {
		ok, err := c.NextElement()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if ctx.Err() != nil {
			continue
		}
		lang, has := c.Attr("lang")
		if !has || lang == "" {
			continue
		}
		if counts[lang] == 0 {
			order = append(order, lang)
		}
		counts[lang]++
		languagesSeen.Inc()
	}

	out := make([]LanguageCount, 0, len(order))
	for _, lang := range order {
		out = append(out, LanguageCount{Language: lang, Count: counts[lang]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}
