package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/echodl/echodl/constant"
	"github.com/echodl/echodl/icon"
	"github.com/echodl/echodl/key"
	"github.com/echodl/echodl/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// dependency is an external executable a command relies on.
type dependency struct {
	name string
	key  string
}

var (
	muxerDependency = dependency{"ffmpeg", key.MuxerPath}
	probeDependency = dependency{"ffprobe", key.ProbePath}
)

// path is the configured location of the executable.
func (d dependency) path() string {
	if p := viper.GetString(d.key); p != "" {
		return p
	}
	return d.name
}

func (d dependency) found() (string, bool) {
	p, err := exec.LookPath(d.path())
	return p, err == nil
}

// CheckDependencies exits with an install hint when one of deps is missing.
func CheckDependencies(deps ...dependency) {
	for _, dep := range deps {
		if _, ok := dep.found(); !ok {
			printMissingDependencyError(dep)
			os.Exit(1)
		}
	}
}

func installHint() string {
	switch runtime.GOOS {
	case constant.Darwin:
		return "brew install ffmpeg"
	case constant.Linux:
		return "sudo apt install ffmpeg"
	case constant.Windows:
		return "scoop install ffmpeg"
	case constant.Android:
		return "pkg install ffmpeg"
	}
	return ""
}

func printMissingDependencyError(dep dependency) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf(
		"The required dependency '%s' was not found. Install it or point %s at it.",
		dep.path(),
		dep.key,
	))

	suggestion := ""
	if installCmd := installHint(); installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.SetOut(os.Stdout)
}

// checkCmd reports where the external tools were found.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that the external multiplexer and probe are installed",
	Run: func(cmd *cobra.Command, args []string) {
		var missing bool

		for _, dep := range []dependency{muxerDependency, probeDependency} {
			if p, ok := dep.found(); ok {
				cmd.Printf("%s %s %s\n", style.Fg(style.SuccessColor)(icon.Get(icon.Success)), style.Bold(dep.name), style.Faint(p))
				continue
			}

			missing = true
			cmd.Printf("%s %s %s\n", style.Fg(style.ErrorColor)(icon.Get(icon.Fail)), style.Bold(dep.name), style.Faint("not found as "+dep.path()))
		}

		if missing {
			if hint := installHint(); hint != "" {
				cmd.Printf("\nTo install it, try running:\n  %s\n", style.New().Foreground(style.AccentColor).Bold(true).Render(hint))
			}
			os.Exit(1)
		}
	},
}
