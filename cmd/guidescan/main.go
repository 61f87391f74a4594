// Command guidescan lists channels, programmes, or languages from an XMLTV
// guide document. Results go to stdout as JSON; logs go to stderr.
//
//	channels    List every channel in the guide
//	programmes  List programmes for one channel within a time window
//	languages   Tally lang attributes across the whole document
//
// The input may be plain XML or gzip/bzip2/xz/brotli compressed.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/snapetech/guidescan/internal/config"
	"github.com/snapetech/guidescan/internal/xmltv"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cmd, args := os.Args[1], os.Args[2:]

	log := logrus.New()
	log.SetOutput(os.Stderr)

	if err := run(cmd, args, log); err != nil {
		log.WithError(err).Fatal("guidescan failed")
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: guidescan <channels|programmes|languages> [flags]

Common flags:
  -input path   XMLTV document (or GUIDESCAN_INPUT; .gz/.bz2/.xz/.br ok)
  -lang code    preferred language (or GUIDESCAN_LANG)
  -env path     .env file to load first (default .env)
  -metrics addr serve prometheus /metrics on addr while scanning
  -v            debug logging

programmes flags:
  -channel id   channel to list (or GUIDESCAN_CHANNEL)
  -from when    window start, XMLTV or RFC3339 date (default now)
  -to when      window end (default from+window)
  -window dur   window length when -to is absent (or GUIDESCAN_WINDOW, default 72h)`)
}

func run(cmd string, args []string, log *logrus.Logger) error {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	envFile := fs.String("env", ".env", "path to .env file")
	input := fs.String("input", "", "XMLTV document path")
	lang := fs.String("lang", "", "preferred language code")
	metricsAddr := fs.String("metrics", "", "serve prometheus metrics on host:port while scanning")
	verbose := fs.Bool("v", false, "debug logging")
	channel := fs.String("channel", "", "channel id (programmes)")
	from := fs.String("from", "", "window start (programmes)")
	to := fs.String("to", "", "window end (programmes)")
	window := fs.Duration("window", 0, "window length when -to is absent (programmes)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := config.LoadEnvFile(*envFile); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	cfg := config.Load()
	if *input != "" {
		cfg.InputPath = *input
	}
	if *lang != "" {
		cfg.PreferredLanguage = *lang
	}
	if *metricsAddr != "" {
		cfg.MetricsListen = *metricsAddr
	}
	if *channel != "" {
		cfg.Channel = *channel
	}
	if *window > 0 {
		cfg.Window = *window
	}
	if *verbose || cfg.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if cfg.InputPath == "" {
		return fmt.Errorf("need -input or GUIDESCAN_INPUT")
	}

	if cfg.MetricsListen != "" {
		go serveMetrics(cfg.MetricsListen, log)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	guide := xmltv.New(cfg.InputPath, cfg.PreferredLanguage)
	started := time.Now()

	switch cmd {
	case "channels":
		chs, err := guide.ListChannels()
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"channels": len(chs), "took": time.Since(started)}).Debug("scan done")
		return emit(chs)
	case "programmes":
		if cfg.Channel == "" {
			return fmt.Errorf("need -channel or GUIDESCAN_CHANNEL")
		}
		start, end, err := resolveWindow(*from, *to, cfg.Window)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"channel": cfg.Channel,
			"from":    start.Format(time.RFC3339),
			"to":      end.Format(time.RFC3339),
		}).Debug("listing programmes")
		ps, err := guide.ListProgrammes(ctx, cfg.Channel, start, end)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"programmes": len(ps), "took": time.Since(started)}).Debug("scan done")
		return emit(ps)
	case "languages":
		langs, err := guide.ListLanguages(ctx)
		if err != nil {
			return err
		}
		return emit(langs)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// resolveWindow turns -from/-to/-window into a concrete UTC interval.
// Absent -from means now; absent -to means from+window.
func resolveWindow(from, to string, window time.Duration) (time.Time, time.Time, error) {
	start := time.Now().UTC()
	if from != "" {
		t, err := parseWhen(from)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("bad -from %q: %w", from, err)
		}
		start = t
	}
	end := start.Add(window)
	if to != "" {
		t, err := parseWhen(to)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("bad -to %q: %w", to, err)
		}
		end = t
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("window start %v is not before end %v", start, end)
	}
	return start, end, nil
}

// parseWhen accepts XMLTV compact dates ("20200101", "20200101180000 +0100")
// and RFC3339.
func parseWhen(s string) (time.Time, error) {
	if t, err := xmltv.ParseDate(s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func emit(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func serveMetrics(addr string, log *logrus.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.WithField("addr", addr).Debug("metrics listener up")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithError(err).Warn("metrics listener stopped")
	}
}
