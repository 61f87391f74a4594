package xmltv

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const guideDoc = `<?xml version="1.0" encoding="UTF-8"?>
<tv source-info-name="test">
  <channel id="one.test">
    <display-name lang="en">Channel One</display-name>
    <display-name>1-1</display-name>
  </channel>
  <channel id="nameless.test">
    <icon src="http://x/icon.png"/>
  </channel>
  <channel id="two.test">
    <display-name lang="es">Canal Dos</display-name>
  </channel>
  <programme channel="ONE.test" start="20200101100000" stop="20200101110000">
    <title lang="en">Morning Show</title>
    <title lang="es">Programa Matinal</title>
    <category lang="en">News</category>
  </programme>
  <programme channel="one.test" start="20200101230000" stop="20200102000000">
    <title>Late Show</title>
  </programme>
  <programme channel="other.test" start="20200101100000" stop="20200101110000">
    <title>Elsewhere</title>
  </programme>
  <programme channel="one.test">
    <title>No Times</title>
  </programme>
</tv>`

func writeGuide(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "guide.xml")
	require.NoError(t, os.WriteFile(path, []byte(guideDoc), 0o644))
	return path
}

func day(h int) time.Time { return time.Date(2020, 1, 1, h, 0, 0, 0, time.UTC) }

func TestListChannels(t *testing.T) {
	g := New(writeGuide(t), "en")
	chs, err := g.ListChannels()
	require.NoError(t, err)
	require.Len(t, chs, 2, "nameless channel must be omitted")
	require.Equal(t, "one.test", chs[0].ID)
	require.Equal(t, "Channel One", chs[0].DisplayName)
	require.Equal(t, "1.1", chs[0].Number)
	require.Equal(t, "Canal Dos", chs[1].DisplayName, "first-seen fallback when en is absent")
}

func TestListProgrammesWindowAndChannelFilter(t *testing.T) {
	g := New(writeGuide(t), "en")
	ps, err := g.ListProgrammes(context.Background(), "one.test", day(9), day(12))
	require.NoError(t, err)
	require.Len(t, ps, 1)
	require.Equal(t, "Morning Show", ps[0].Title)
	// Channel matching is case-insensitive; the attribute is kept verbatim.
	require.Equal(t, "ONE.test", ps[0].ChannelID)
	require.Equal(t, []string{"News"}, ps[0].Categories)
}

func TestListProgrammesWindowBoundaries(t *testing.T) {
	g := New(writeGuide(t), "")
	// start >= windowEnd excludes; the 23:00 programme is out for a window
	// ending at 23:00 exactly.
	ps, err := g.ListProgrammes(context.Background(), "one.test", day(12), day(23))
	require.NoError(t, err)
	require.Empty(t, ps)
	// end < windowStart excludes, but end == windowStart overlaps.
	ps, err = g.ListProgrammes(context.Background(), "one.test", day(11), day(12))
	require.NoError(t, err)
	require.Len(t, ps, 1)
	require.Equal(t, "Morning Show", ps[0].Title)
}

func TestListProgrammesMissingTimesExcluded(t *testing.T) {
	// Absent start/stop read as the zero instant, which can never overlap a
	// real window.
	g := New(writeGuide(t), "")
	ps, err := g.ListProgrammes(context.Background(), "one.test", day(0), day(23))
	require.NoError(t, err)
	for _, p := range ps {
		require.NotEqual(t, "No Times", p.Title)
	}
}

func TestListProgrammesIdempotent(t *testing.T) {
	g := New(writeGuide(t), "en")
	a, err := g.ListProgrammes(context.Background(), "one.test", day(0), day(23).Add(time.Hour))
	require.NoError(t, err)
	b, err := g.ListProgrammes(context.Background(), "one.test", day(0), day(23).Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

// A fired cancellation skips every remaining programme but the scan still
// walks to the end of the document; it does not break out early. That
// skip-not-break behavior is deliberate, see ListProgrammes.
func TestListProgrammesCanceledContextSkipsAll(t *testing.T) {
	g := New(writeGuide(t), "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ps, err := g.ListProgrammes(ctx, "one.test", day(0), day(23))
	require.NoError(t, err, "cancellation is not an error")
	require.Empty(t, ps)
}

func TestListLanguages(t *testing.T) {
	g := New(writeGuide(t), "")
	langs, err := g.ListLanguages(context.Background())
	require.NoError(t, err)
	require.Equal(t, []LanguageCount{
		{Language: "en", Count: 3},
		{Language: "es", Count: 2},
	}, langs)
}

func TestListLanguagesCanceled(t *testing.T) {
	g := New(writeGuide(t), "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	langs, err := g.ListLanguages(ctx)
	require.NoError(t, err)
	require.Empty(t, langs)
}

func TestGuideFromGzipSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.xml.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(guideDoc))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	g := New(path, "en")
	chs, err := g.ListChannels()
	require.NoError(t, err)
	require.Len(t, chs, 2)
}

func TestGuideMissingFile(t *testing.T) {
	g := New(filepath.Join(t.TempDir(), "nope.xml"), "")
	_, err := g.ListChannels()
	require.Error(t, err)
}

func TestGuideWithoutRootIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd.xml")
	require.NoError(t, os.WriteFile(path, []byte(`<guide></guide>`), 0o644))
	g := New(path, "")
	chs, err := g.ListChannels()
	require.NoError(t, err)
	require.Empty(t, chs)
}
