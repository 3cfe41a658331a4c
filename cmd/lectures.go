package cmd

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/echodl/echodl/catalog"
	"github.com/echodl/echodl/color"
	"github.com/echodl/echodl/filesystem"
	"github.com/echodl/echodl/icon"
	"github.com/echodl/echodl/internal/cache"
	"github.com/echodl/echodl/style"
	"github.com/echodl/echodl/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(lecturesCmd)

	lecturesCmd.Flags().StringP("course", "c", "", "Only list lectures of courses whose code or name fuzzily matches")
	lecturesCmd.Flags().BoolP("json", "j", false, "Print the lectures as JSON lines")

	lecturesCmd.SetOut(os.Stdout)
}

// lecturesCmd reads the catalog cached by the last crawl, it never goes online.
var lecturesCmd = &cobra.Command{
	Use:   "lectures",
	Short: "List the recorded lectures known from the last crawl",
	Run: func(cmd *cobra.Command, args []string) {
		if !cache.Has(where.Enrollments()) {
			handleErr(errors.New("no catalog cached yet, run `echodl crawl` first"))
		}

		cat := &catalog.Catalog{OnEvent: func(catalog.Event) {}}

		sections, err := cat.Sections()
		handleErr(err)
		sections = catalog.Filter(sections, lo.Must(cmd.Flags().GetString("course")))

		asJson := lo.Must(cmd.Flags().GetBool("json"))
		encoder := json.NewEncoder(cmd.OutOrStdout())

		for lecture, err := range cat.Lectures(sections) {
			if err != nil {
				cmd.PrintErrf("%s %s: %s\n", icon.Get(icon.Fail), lecture.Course, err)
				continue
			}

			if asJson {
				handleErr(encoder.Encode(lecture))
				continue
			}

			mark := style.Faint(icon.Get(icon.Skip))
			if filesystem.Exists(where.Video(lecture.Course, lecture.Lesson.Name)) {
				mark = style.Fg(color.Green)(icon.Get(icon.Success))
			}

			cmd.Printf("%s %s %s\n", mark, style.Fg(color.Purple)(lecture.Course), lecture.Lesson.Name)
		}
	},
}
