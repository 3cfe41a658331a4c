package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/echodl/echodl/auth"
	"github.com/echodl/echodl/color"
	"github.com/echodl/echodl/icon"
	"github.com/echodl/echodl/key"
	"github.com/echodl/echodl/network"
	"github.com/echodl/echodl/open"
	"github.com/echodl/echodl/style"
	"github.com/echodl/echodl/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSetCmd, authImportCmd, authClearCmd, authStatusCmd)
	authStatusCmd.SetOut(os.Stdout)

	authSetCmd.Flags().BoolP("open", "o", false, "Open the platform in the browser to sign in first")
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the platform session cookie",
	Long: "Manage the platform session cookie.\n" +
		"The cookie is read from " + key.AuthCookieFile + " when it is set and from the system keyring otherwise.",
}

var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Paste a session cookie and store it in the system keyring",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(open.Start(viper.GetString(key.PlatformBaseURL)))
		}

		prompt := &survey.Password{
			Message: "Session cookie:",
			Help:    "Copy the Cookie request header of any page of the platform from your browser's developer tools",
		}

		var response string
		handleErr(survey.AskOne(prompt, &response, survey.WithValidator(survey.Required)))

		cookie := auth.Clean(response)
		if cookie == "" {
			handleErr(errors.New("cookie is empty"))
		}

		handleErr(auth.SetCookie(cookie))
		fmt.Printf("%s stored %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			util.Quantify(len(network.ParseCookies(cookie)), "cookie", "cookies"),
		)
	},
}

var authImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Store the session cookie of a cookie.txt file in the system keyring",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.Import(args[0]))
		fmt.Printf("%s imported cookie from %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			args[0],
		)
	},
}

var authClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the session cookie from the system keyring",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := auth.DeleteCookie(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			handleErr(err)
		}

		fmt.Printf("%s cleared session cookie\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the session cookie comes from",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cookie, source, err := auth.Cookie()
		if err != nil {
			cmd.Printf("%s %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), err)
			os.Exit(1)
		}

		names := lo.Map(network.ParseCookies(cookie), func(c network.Cookie, _ int) string {
			return c.Name
		})

		origin := string(source)
		if source == auth.FromFile {
			origin += " " + style.Faint(viper.GetString(key.AuthCookieFile))
		}

		cmd.Printf("%s session cookie from %s\n", style.Fg(color.Green)(icon.Get(icon.Cookie)), origin)
		for _, name := range names {
			cmd.Printf("  %s %s\n", icon.Get(icon.Arrow), style.Fg(color.Purple)(name))
		}
	},
}
