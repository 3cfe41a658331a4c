package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/echodl/echodl/icon"
	"github.com/echodl/echodl/util"
	"github.com/echodl/echodl/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// clearTarget defines a filesystem resource eligible for cleanup.
type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

// clearTargets registry of all application artifacts that can be selectively cleared.
// Published videos and subtitles are never a target.
var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), where.Cache},
	{"history file", "history", mo.Some("s"), where.History},
	{"enrollment list", "enrollments", mo.Some("e"), where.Enrollments},
	{"cached syllabi", "syllabi", mo.Some("y"), where.Syllabi},
	{"cached lesson lists", "lessons", mo.Some("l"), where.Lessons},
	{"raw transcripts", "transcripts", mo.Some("t"), where.Transcripts},
	{"temporary workspaces", "temp", mo.None[string](), where.Temp},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
}

// clearCmd manages the cleanup of cached and temporary application artifacts.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached catalog documents and temporary artifacts",
	Long: "Clear cached catalog documents and temporary artifacts.\n" +
		"A cleared document is fetched again by the next crawl.",
	Run: func(cmd *cobra.Command, args []string) {
		var anyCleared bool

		doClear := func(what string) bool {
			return lo.Must(cmd.Flags().GetBool(what))
		}

		for _, target := range clearTargets {
			if !doClear(target.argLong) {
				continue
			}

			anyCleared = true
			e := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
			err := util.Delete(target.location())
			e()

			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				handleErr(err)
			}
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
