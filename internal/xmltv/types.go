package xmltv

import "time"

// Channel is one <channel> entry. Immutable once returned by a scan; a
// channel without a display name is never returned at all.
type Channel struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Number      string `json:"number,omitempty"`
	URL         string `json:"url,omitempty"`
	Icon        *Icon  `json:"icon,omitempty"`
}

// Programme is one fully decoded <programme> entry.
type Programme struct {
	ChannelID         string            `json:"channelId"`
	Start             time.Time         `json:"start"`
	Stop              time.Time         `json:"stop"`
	Title             string            `json:"title,omitempty"`
	SubTitle          string            `json:"subTitle,omitempty"`
	Description       string            `json:"description,omitempty"`
	Categories        []string          `json:"categories,omitempty"`
	Countries         []string          `json:"countries,omitempty"`
	Icon              *Icon             `json:"icon,omitempty"`
	IsPremiere        bool              `json:"isPremiere,omitempty"`
	IsNew             bool              `json:"isNew,omitempty"`
	IsLive            bool              `json:"isLive,omitempty"`
	IsPreviouslyShown bool              `json:"isPreviouslyShown,omitempty"`
	PreviouslyShown   time.Time         `json:"previouslyShown,omitzero"`
	Quality           string            `json:"quality,omitempty"`
	CopyrightDate     time.Time         `json:"copyrightDate,omitzero"`
	StarRating        *float64          `json:"starRating,omitempty"`
	Rating            *Rating           `json:"rating,omitempty"`
	ProgramID         string            `json:"programId,omitempty"`
	ProviderIDs       map[string]string `json:"providerIds,omitempty"`
	SeriesProviderIDs map[string]string `json:"seriesProviderIds,omitempty"`
	Credits           []Credit          `json:"credits,omitempty"`
	Episode           *Episode          `json:"episode,omitempty"`
}

// Episode carries normalized numbering. All numbers are 1-based; zero means
// unknown. Counts are totals ("episode 3 of 12") and are never re-based.
type Episode struct {
	Season       int    `json:"season,omitempty"`
	SeasonCount  int    `json:"seasonCount,omitempty"`
	Episode      int    `json:"episode,omitempty"`
	EpisodeCount int    `json:"episodeCount,omitempty"`
	Part         int    `json:"part,omitempty"`
	PartCount    int    `json:"partCount,omitempty"`
	SubTitle     string `json:"subTitle,omitempty"`
}

// Icon is an image reference. An icon with no source and no dimensions is
// treated as absent and never attached to a record.
type Icon struct {
	Source string `json:"source,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

func (i Icon) empty() bool { return i.Source == "" && i.Width == 0 && i.Height == 0 }

// Rating is a certification rating such as "TV-14", optionally tagged with
// the rating system it belongs to ("MPAA", "VCHIP", ...).
type Rating struct {
	Value  string `json:"value"`
	System string `json:"system,omitempty"`
}

// Credit is one (role, person) pair from a <credits> block.
type Credit struct {
	Role string `json:"role"`
	Name string `json:"name"`
}

// LanguageCount is one entry of the language census.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}
