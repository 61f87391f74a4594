package xmltv

import "testing"

func decodeNum(system, value string) *programmeBuilder {
	b := &programmeBuilder{}
	b.applyEpisodeNum(system, value)
	return b
}

func TestXMLTVNS(t *testing.T) {
	b := decodeNum("xmltv_ns", "1.2.0")
	ep := b.episode
	if ep == nil {
		t.Fatal("no episode")
	}
	if ep.Season != 2 || ep.Episode != 3 || ep.Part != 1 {
		t.Errorf("got S%d E%d P%d", ep.Season, ep.Episode, ep.Part)
	}
}

func TestXMLTVNSCounts(t *testing.T) {
	b := decodeNum("xmltv_ns", "1/6.2/13.0/2")
	ep := b.episode
	if ep == nil {
		t.Fatal("no episode")
	}
	if ep.Season != 2 || ep.SeasonCount != 6 {
		t.Errorf("season: %d/%d", ep.Season, ep.SeasonCount)
	}
	if ep.Episode != 3 || ep.EpisodeCount != 13 {
		t.Errorf("episode: %d/%d", ep.Episode, ep.EpisodeCount)
	}
	if ep.Part != 1 || ep.PartCount != 2 {
		t.Errorf("part: %d/%d", ep.Part, ep.PartCount)
	}
}

func TestXMLTVNSPartialSegments(t *testing.T) {
	// Spaces are stripped; the empty season segment stays unset.
	b := decodeNum("xmltv_ns", " . 5 . ")
	ep := b.episode
	if ep == nil {
		t.Fatal("no episode")
	}
	if ep.Season != 0 || ep.SeasonCount != 0 {
		t.Errorf("season should be unset: %d/%d", ep.Season, ep.SeasonCount)
	}
	if ep.Episode != 6 {
		t.Errorf("episode: %d", ep.Episode)
	}
	if ep.Part != 0 {
		t.Errorf("part should be unset: %d", ep.Part)
	}
}

func TestXMLTVNSGarbage(t *testing.T) {
	if b := decodeNum("xmltv_ns", "x.y.z"); b.episode != nil {
		t.Errorf("episode created from garbage: %+v", b.episode)
	}
}

func TestDDProgID(t *testing.T) {
	b := decodeNum("dd_progid", "EP00847563.0012")
	if b.p.ProgramID != "EP00847563.0012" {
		t.Errorf("program id: %q", b.p.ProgramID)
	}
	if b := decodeNum("dd_progid", "   "); b.p.ProgramID != "" {
		t.Errorf("blank stored: %q", b.p.ProgramID)
	}
}

func TestIceTV(t *testing.T) {
	b := decodeNum("icetv", "964-0")
	if b.p.ProviderIDs["icetv"] != "964-0" {
		t.Errorf("provider ids: %v", b.p.ProviderIDs)
	}
}

func TestOnscreenDiscarded(t *testing.T) {
	b := decodeNum("onscreen", "Episode #4021")
	if b.episode != nil || len(b.p.ProviderIDs) != 0 {
		t.Errorf("onscreen should be discarded: %+v %v", b.episode, b.p.ProviderIDs)
	}
}

func TestTVDBAndIMDB(t *testing.T) {
	b := &programmeBuilder{}
	b.applyEpisodeNum("thetvdb.com", "series/80379")
	b.applyEpisodeNum("thetvdb.com", "episode/5590688")
	b.applyEpisodeNum("imdb.com", "episode/tt0959621")
	if b.p.SeriesProviderIDs["tvdb"] != "80379" {
		t.Errorf("series ids: %v", b.p.SeriesProviderIDs)
	}
	if b.p.ProviderIDs["tvdb"] != "5590688" || b.p.ProviderIDs["imdb"] != "tt0959621" {
		t.Errorf("episode ids: %v", b.p.ProviderIDs)
	}
}

func TestTVDBBadShapeIgnored(t *testing.T) {
	b := decodeNum("thetvdb.com", "series/80379/extra")
	if len(b.p.SeriesProviderIDs) != 0 || len(b.p.ProviderIDs) != 0 {
		t.Errorf("three slash-parts should be ignored: %v %v", b.p.SeriesProviderIDs, b.p.ProviderIDs)
	}
}

func TestTMDB(t *testing.T) {
	b := &programmeBuilder{}
	b.applyEpisodeNum("themoviedb.org", "series/1399")
	if b.p.SeriesProviderIDs["tmdb"] != "1399" {
		t.Errorf("series ids: %v", b.p.SeriesProviderIDs)
	}
	b.applyEpisodeNum("themoviedb.org", "63056")
	if b.p.ProviderIDs["tmdb"] != "63056" {
		t.Errorf("bare token: %v", b.p.ProviderIDs)
	}
	b.applyEpisodeNum("themoviedb.org", "episode/63057")
	if b.p.ProviderIDs["tmdb"] != "63057" {
		t.Errorf("episode form: %v", b.p.ProviderIDs)
	}
}

func TestSxxExx(t *testing.T) {
	b := decodeNum("SxxExx", "The One Where... s02e13 remastered")
	ep := b.episode
	if ep == nil {
		t.Fatal("no episode")
	}
	// No zero-basing for this system: the digits are taken as written.
	if ep.Season != 2 || ep.Episode != 13 {
		t.Errorf("got S%d E%d", ep.Season, ep.Episode)
	}
}

func TestSxxExxNoMatch(t *testing.T) {
	if b := decodeNum("SxxExx", "Season finale"); b.episode != nil {
		t.Errorf("episode created: %+v", b.episode)
	}
}

func TestUnknownSystemIgnored(t *testing.T) {
	b := decodeNum("", "1.2.0")
	if b.episode != nil || b.p.ProgramID != "" {
		t.Error("empty system must be ignored")
	}
	b = decodeNum("tvrage.com", "series/123")
	if len(b.p.SeriesProviderIDs) != 0 {
		t.Error("unknown system must be ignored")
	}
}
