package cmd

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"os/signal"
	"syscall"

	"github.com/echodl/echodl/catalog"
	"github.com/echodl/echodl/color"
	"github.com/echodl/echodl/echo360"
	"github.com/echodl/echodl/harvest"
	"github.com/echodl/echodl/icon"
	"github.com/echodl/echodl/key"
	"github.com/echodl/echodl/log"
	"github.com/echodl/echodl/remux"
	"github.com/echodl/echodl/style"
	"github.com/echodl/echodl/util"
	"github.com/echodl/echodl/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(crawlCmd)

	crawlCmd.Flags().StringP("course", "c", "", "Only harvest courses whose code or name fuzzily matches")
	crawlCmd.Flags().Bool("no-videos", false, "Do not download videos")
	crawlCmd.Flags().Bool("no-transcripts", false, "Do not download transcripts")
	crawlCmd.MarkFlagsMutuallyExclusive("no-videos", "no-transcripts")

	crawlCmd.Flags().BoolP("refresh", "r", false, "Refetch the enrollment list even when it is cached")
	lo.Must0(viper.BindPFlag(key.CatalogRefreshEnrollments, crawlCmd.Flags().Lookup("refresh")))
}

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl the enrolled courses and harvest every new lecture",
	Long: "Crawl the enrolled courses and harvest every new lecture.\n" +
		"Catalog documents and published files are kept on disk, so a rerun only fetches what is new.",
	Example: "  echodl crawl\n  echodl crawl --course comp1000 --no-videos",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("no-videos")) {
			viper.Set(key.HarvestVideos, false)
		}
		if lo.Must(cmd.Flags().GetBool("no-transcripts")) {
			viper.Set(key.HarvestTranscripts, false)
		}
		if viper.GetBool(key.HarvestVideos) {
			CheckDependencies(muxerDependency)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		session := newSession()
		session.OnProgress = activeProgress.Update
		cat, client := newCatalog(session)

		course := lo.Must(cmd.Flags().GetString("course"))
		sections := crawlCatalog(ctx, cat, course)

		fmt.Printf("%s Harvesting %s into %s\n",
			icon.Get(icon.Course),
			util.Quantify(len(sections), "course", "courses"),
			style.Fg(color.Purple)(where.Videos()),
		)

		harvester := newHarvester(session, client)
		report := harvester.Run(ctx, announced(cat.Lectures(sections)), printResult)
		eraseProgress()

		printReport(report)

		if ctx.Err() != nil {
			fmt.Printf("%s %s\n", style.Fg(color.Yellow)(icon.Get(icon.Warn)), "interrupted, rerun to resume")
			os.Exit(130)
		}

		if report.Failed > 0 {
			os.Exit(1)
		}
	},
}

// crawlCatalog runs the metadata stages and returns the sections to harvest.
// Courses that could not be crawled completely are reported and still harvested
// from whatever was cached.
func crawlCatalog(ctx context.Context, cat *catalog.Catalog, course string) []echo360.Section {
	erase := util.PrintErasable(fmt.Sprintf("%s Crawling catalog...", icon.Get(icon.Progress)))
	sections, err := cat.Crawl(ctx, course)
	erase()

	if sections == nil {
		handleErr(err)
	}

	if err != nil {
		log.Error(err)
		fmt.Printf("%s %s\n%s\n",
			style.Fg(color.Yellow)(icon.Get(icon.Warn)),
			"some course metadata could not be fetched",
			style.Faint(err.Error()),
		)
	}

	if len(sections) == 0 {
		if course != "" {
			handleErr(fmt.Errorf("no enrolled course matches %q", course))
		}
		handleErr(errors.New("no enrolled courses"))
	}

	return sections
}

// announced labels the progress bar with the lecture being harvested.
func announced(lectures iter.Seq2[catalog.Lecture, error]) iter.Seq2[catalog.Lecture, error] {
	return func(yield func(catalog.Lecture, error) bool) {
		for lecture, err := range lectures {
			activeProgress.SetLabel(lecture.String())
			if !yield(lecture, err) {
				return
			}
		}
	}
}

func printResult(r harvest.Result) {
	eraseProgress()

	if r.Subtitle == 0 && r.Video == 0 && r.VideoErr != nil {
		printOutcome(icon.Lecture, r.Lecture.String(), 0, r.VideoErr)
		return
	}

	if viper.GetBool(key.HarvestTranscripts) {
		printOutcome(icon.Subtitle, r.Lecture.String(), r.Subtitle, r.SubtitleErr)
	}

	if viper.GetBool(key.HarvestVideos) {
		name := r.Lecture.String()
		if r.Plan != nil && r.Video == remux.Published {
			name += " " + style.Faint("("+r.Plan.Kind()+")")
		}
		printOutcome(icon.Video, name, r.Video, r.VideoErr)
	}
}

func printOutcome(kind icon.Icon, name string, outcome remux.Outcome, err error) {
	switch {
	case err != nil:
		fmt.Printf("%s %s %s\n  %s\n",
			style.Fg(color.Red)(icon.Get(icon.Fail)),
			icon.Get(kind),
			name,
			style.Fg(color.Red)(err.Error()),
		)
	case outcome == remux.Published:
		fmt.Printf("%s %s %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			icon.Get(kind),
			name,
		)
	default:
		fmt.Printf("%s %s %s\n",
			style.Faint(icon.Get(icon.Skip)),
			icon.Get(kind),
			style.Faint(name),
		)
	}
}

func printReport(report harvest.Report) {
	fmt.Printf("\n%s %s, %s, %s\n",
		style.Bold("Summary:"),
		style.Fg(color.Green)(util.Quantify(report.Harvested, "lecture harvested", "lectures harvested")),
		style.Faint(fmt.Sprintf("%d skipped", report.Skipped)),
		style.Fg(color.Red)(fmt.Sprintf("%d failed", report.Failed)),
	)

	for _, failure := range report.Failures {
		fmt.Printf("  %s %s\n", style.Fg(color.Red)(icon.Get(icon.Arrow)), failure.Lecture)
	}
}
