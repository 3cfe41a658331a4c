package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/echodl/echodl/color"
	"github.com/echodl/echodl/icon"
	"github.com/echodl/echodl/key"
	"github.com/echodl/echodl/style"
	"github.com/echodl/echodl/util"
	"github.com/echodl/echodl/validate"
	"github.com/echodl/echodl/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolP("metadata-only", "m", false, "Only read the container metadata instead of decoding every frame")
	lo.Must0(viper.BindPFlag(key.ValidateMetadataOnly, validateCmd.Flags().Lookup("metadata-only")))

	validateCmd.Flags().Bool("hwaccel", false, "Let the decoder use hardware acceleration")
	lo.Must0(viper.BindPFlag(key.ValidateHWAccel, validateCmd.Flags().Lookup("hwaccel")))
}

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check that every published video can be read back",
	Long: "Check that every published video under dir can be read back.\n" +
		"dir defaults to the videos directory.",
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := where.Videos()
		if len(args) == 1 {
			root = args[0]
		}

		metadataOnly := viper.GetBool(key.ValidateMetadataOnly)
		if metadataOnly {
			CheckDependencies(probeDependency)
		} else {
			CheckDependencies(muxerDependency)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		validator := validate.Validator{
			Checker: &validate.FFmpeg{
				FFmpegPath:   muxerDependency.path(),
				FFprobePath:  probeDependency.path(),
				MetadataOnly: metadataOnly,
				HWAccel:      viper.GetBool(key.ValidateHWAccel),
			},
			OnFile: func(f validate.File) {
				fmt.Printf("%s %s %s\n",
					icon.Get(icon.Progress),
					f.Path,
					style.Faint("("+humanize.Bytes(uint64(f.Size))+")"),
				)
			},
		}

		invalid, err := validator.Validate(ctx, root)
		handleErr(err)

		fmt.Println()
		if len(invalid) == 0 {
			fmt.Printf("%s all videos are valid\n", style.Fg(color.Green)(icon.Get(icon.Success)))
			return
		}

		fmt.Printf("%s %s\n",
			style.Fg(color.Red)(icon.Get(icon.Fail)),
			util.Quantify(len(invalid), "invalid video", "invalid videos"),
		)
		for _, f := range invalid {
			fmt.Printf("  %s %s %s\n", icon.Get(icon.Arrow), f.Path, style.Faint(humanize.Bytes(uint64(f.Size))))
		}
		os.Exit(1)
	},
}
