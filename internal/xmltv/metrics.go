package xmltv

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	channelsScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "guidescan_channels_scanned_total",
		Help: "Channels emitted by guide scans.",
	})
	programmesScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "guidescan_programmes_scanned_total",
		Help: "Programmes fully decoded and emitted by guide scans.",
	})
	programmesFiltered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "guidescan_programmes_filtered_total",
		Help: "Programmes rejected by the window filter before decoding.",
	})
	languagesSeen = promauto.NewCounter(prometheus.CounterOpts{
		Name: "guidescan_languages_seen_total",
		Help: "lang attributes tallied by language census scans.",
	})
)
