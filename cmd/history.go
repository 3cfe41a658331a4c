package cmd

import (
	"encoding/json"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/echodl/echodl/color"
	"github.com/echodl/echodl/filesystem"
	"github.com/echodl/echodl/history"
	"github.com/echodl/echodl/icon"
	"github.com/echodl/echodl/style"
	"github.com/echodl/echodl/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().BoolP("json", "j", false, "Print the ledger as JSON")
	historyCmd.Flags().IntP("limit", "n", 0, "Only show the most recent records")
	historyCmd.Flags().Bool("prune", false, "Forget lectures whose video no longer exists")
	historyCmd.Flags().Bool("clear", false, "Forget every lecture")
	historyCmd.MarkFlagsMutuallyExclusive("prune", "clear")

	historyCmd.SetOut(os.Stdout)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the harvested lectures, most recent first",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("clear")) {
			handleErr(history.Clear())
			cmd.Printf("%s history cleared\n", style.Fg(color.Green)(icon.Get(icon.Success)))
			return
		}

		records, err := history.List()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("prune")) {
			var pruned int
			for _, record := range records {
				if filesystem.Exists(record.Path) {
					continue
				}
				handleErr(history.Remove(record))
				pruned++
			}

			cmd.Printf("%s forgot %s\n",
				style.Fg(color.Green)(icon.Get(icon.Success)),
				util.Quantify(pruned, "lecture", "lectures"),
			)
			return
		}

		if limit := lo.Must(cmd.Flags().GetInt("limit")); limit > 0 && limit < len(records) {
			records = records[:limit]
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(records))
			return
		}

		if len(records) == 0 {
			cmd.Println(style.Faint("nothing harvested yet"))
			return
		}

		for _, record := range records {
			cmd.Printf("%s %s %s %s\n",
				icon.Get(icon.Video),
				style.Fg(color.Purple)(record.Course),
				record.Lesson,
				style.Faint(record.Plan+", "+humanize.Time(record.HarvestedAt)),
			)
		}
	},
}
