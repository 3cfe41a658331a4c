package cmd

import (
	"fmt"
	"time"

	"github.com/echodl/echodl/auth"
	"github.com/echodl/echodl/catalog"
	"github.com/echodl/echodl/color"
	"github.com/echodl/echodl/echo360"
	"github.com/echodl/echodl/harvest"
	"github.com/echodl/echodl/icon"
	"github.com/echodl/echodl/key"
	"github.com/echodl/echodl/log"
	"github.com/echodl/echodl/manifest"
	"github.com/echodl/echodl/network"
	"github.com/echodl/echodl/remux"
	"github.com/echodl/echodl/style"
	"github.com/echodl/echodl/where"
	"github.com/spf13/viper"
)

// newSession authenticates with the configured session cookie.
func newSession() *network.Session {
	cookie, source, err := auth.Cookie()
	handleErr(err)
	log.Infof("using session cookie from %s", source)

	return network.NewSession(viper.GetString(key.PlatformUserAgent), cookie)
}

// newCatalog builds a catalog reading the platform through session.
// Crawl notices are printed as they happen.
func newCatalog(session *network.Session) (*catalog.Catalog, *echo360.Client) {
	client := echo360.New(viper.GetString(key.PlatformBaseURL), session)

	return &catalog.Catalog{
		API:                client,
		RefreshEnrollments: viper.GetBool(key.CatalogRefreshEnrollments),
		OnEvent:            printEvent,
	}, client
}

func printEvent(e catalog.Event) {
	subject := e.Course
	if e.Lesson != "" {
		subject += " / " + e.Lesson
	}

	eraseProgress()
	fmt.Printf("%s %s %s\n",
		style.Fg(color.Yellow)(icon.Get(icon.Warn)),
		style.Faint(e.Message+":"),
		subject,
	)
}

// newHarvester wires the segment locator and remux pipeline to the platform.
func newHarvester(session *network.Session, client *echo360.Client) *harvest.Harvester {
	muxer := &remux.FFmpeg{
		Path:     viper.GetString(key.MuxerPath),
		LogLevel: viper.GetString(key.MuxerLogLevel),
		Timeout:  time.Duration(viper.GetInt(key.MuxerTimeout)) * time.Minute,
	}

	return &harvest.Harvester{
		Locator: &manifest.Locator{
			Fetcher:     session,
			Marker:      viper.GetString(key.PlatformQualityMarker),
			ManifestExt: viper.GetString(key.PlatformManifestExt),
			SegmentExt:  viper.GetString(key.PlatformSegmentExt),
		},
		Pipeline: &remux.Pipeline{
			Muxer:      muxer,
			Downloader: session,
			Headers:    session.HeadersWithCookie(),
			Scratch:    where.Temp(),
		},
		Transcripts: client,
		Videos:      viper.GetBool(key.HarvestVideos),
		Subtitles:   viper.GetBool(key.HarvestTranscripts),
		Record:      viper.GetBool(key.HistorySave),
	}
}
