package xmltv

import (
	"regexp"
	"strconv"
	"strings"
)

// sxxExxRe anchors nothing: the pattern is searched for anywhere in the text.
var sxxExxRe = regexp.MustCompile(`(?i)S(\d+)E(\d+)`)

// applyEpisodeNum decodes one <episode-num system="..."> value into the
// builder. Unrecognized or empty systems are ignored. Every decode failure
// is a silent skip; a bad value never disturbs fields already set.
func (b *programmeBuilder) applyEpisodeNum(system, value string) {
	switch system {
	case "xmltv_ns":
		b.applyXMLTVNS(value)
	case "dd_progid":
		if strings.TrimSpace(value) != "" {
			b.p.ProgramID = value
		}
	case "icetv":
		if strings.TrimSpace(value) != "" {
			b.setProviderID("icetv", value)
		}
	case "onscreen":
		// Often "Episode #nnnn", but the shape is too free-form to trust;
		// parsed and discarded.
	case "thetvdb.com":
		b.applyProviderPair("tvdb", value)
	case "imdb.com":
		b.applyProviderPair("imdb", value)
	case "themoviedb.org":
		b.applyTMDB(value)
	case "SxxExx":
		b.applySxxExx(value)
	}
}

// applyXMLTVNS decodes "S[/Sc].E[/Ec].P[/Pc]". Numbers are 0-based in the
// source and re-based to 1; counts are taken as-is. A missing or unparsable
// segment leaves its fields unset.
func (b *programmeBuilder) applyXMLTVNS(value string) {
	value = strings.ReplaceAll(value, " ", "")
	segments := strings.Split(value, ".")
	for i, seg := range segments {
		if i > 2 {
			break
		}
		num, count := splitSegment(seg)
		if num == nil && count == nil {
			continue
		}
		ep := b.ensureEpisode()
		switch i {
		case 0:
			if num != nil {
				ep.Season = *num + 1
			}
			if count != nil {
				ep.SeasonCount = *count
			}
		case 1:
			if num != nil {
				ep.Episode = *num + 1
			}
			if count != nil {
				ep.EpisodeCount = *count
			}
		case 2:
			if num != nil {
				ep.Part = *num + 1
			}
			if count != nil {
				ep.PartCount = *count
			}
		}
	}
}

// splitSegment parses "n" or "n/total" into its two optional halves.
func splitSegment(seg string) (num, count *int) {
	numPart, countPart, hasCount := strings.Cut(seg, "/")
	if n, err := strconv.Atoi(numPart); err == nil {
		num = &n
	}
	if hasCount {
		if n, err := strconv.Atoi(countPart); err == nil {
			count = &n
		}
	}
	return num, count
}

// applyProviderPair handles "series/<id>" and "episode/<id>" systems
// (thetvdb.com, imdb.com). Anything that is not exactly two slash-parts is
// ignored.
func (b *programmeBuilder) applyProviderPair(provider, value string) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return
	}
	switch parts[0] {
	case "series":
		b.setSeriesProviderID(provider, parts[1])
	case "episode":
		b.setProviderID(provider, parts[1])
	}
}

// applyTMDB handles themoviedb.org values: "series/<id>" is series-level;
// a bare "<id>" or "episode/<id>" is episode-level, keyed off the last
// slash segment.
func (b *programmeBuilder) applyTMDB(value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	parts := strings.Split(value, "/")
	if len(parts) == 2 && parts[0] == "series" {
		b.setSeriesProviderID("tmdb", parts[1])
		return
	}
	if id := parts[len(parts)-1]; id != "" {
		b.setProviderID("tmdb", id)
	}
}

func (b *programmeBuilder) applySxxExx(value string) {
	m := sxxExxRe.FindStringSubmatch(value)
	if m == nil {
		return
	}
	ep := b.ensureEpisode()
	if n, err := strconv.Atoi(m[1]); err == nil {
		ep.Season = n
	}
	if n, err := strconv.Atoi(m[2]); err == nil {
		ep.Episode = n
	}
}
