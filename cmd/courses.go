package cmd

import (
	"context"
	"encoding/json"
	"os"

	"github.com/echodl/echodl/catalog"
	"github.com/echodl/echodl/color"
	"github.com/echodl/echodl/echo360"
	"github.com/echodl/echodl/icon"
	"github.com/echodl/echodl/internal/cache"
	"github.com/echodl/echodl/key"
	"github.com/echodl/echodl/style"
	"github.com/echodl/echodl/where"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(coursesCmd)

	coursesCmd.Flags().StringP("course", "c", "", "Only list courses whose code or name fuzzily matches")
	coursesCmd.Flags().BoolP("json", "j", false, "Print the courses as JSON")
	coursesCmd.Flags().Bool("schema", false, "Print the JSON schema of a course and exit")
	coursesCmd.Flags().BoolP("refresh", "r", false, "Refetch the enrollment list even when it is cached")
	coursesCmd.MarkFlagsMutuallyExclusive("json", "schema")

	coursesCmd.SetOut(os.Stdout)
}

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List the enrolled courses",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			reflector := new(jsonschema.Reflector)
			reflector.Anonymous = true
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(reflector.Reflect([]echo360.Section{})))
			return
		}

		refresh := lo.Must(cmd.Flags().GetBool("refresh")) || viper.GetBool(key.CatalogRefreshEnrollments)
		cat := &catalog.Catalog{}

		if refresh || !cache.Has(where.Enrollments()) {
			cat, _ = newCatalog(newSession())
			cat.RefreshEnrollments = refresh
			handleErr(cat.FetchEnrollments(context.Background()))
		}

		sections, err := cat.Sections()
		handleErr(err)
		sections = catalog.Filter(sections, lo.Must(cmd.Flags().GetString("course")))

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(sections))
			return
		}

		for _, section := range sections {
			cmd.Printf("%s %s %s\n",
				icon.Get(icon.Course),
				style.Fg(color.Purple)(section.CourseCode),
				section.CourseName,
			)
		}
	},
}
