// Package version provides unified mechanisms for application version tracking, update discovery, and compatibility validation.
package version

import (
	"context"
	"fmt"
	"time"

	"github.com/echodl/echodl/color"
	"github.com/echodl/echodl/constant"
	"github.com/echodl/echodl/icon"
	"github.com/echodl/echodl/key"
	"github.com/echodl/echodl/style"
	"github.com/echodl/echodl/util"
	"github.com/spf13/viper"
)

// Notify prints an alert when cli.release_repo has a newer release.
// Lookup failures are silent.
func Notify() {
	repo := viper.GetString(key.CliReleaseRepo)
	if !viper.GetBool(key.CliVersionCheck) || repo == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	version, err := Latest(ctx, repo)
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(version, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(version),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/"+repo+"/releases/tag/v"+version),
	)
}
