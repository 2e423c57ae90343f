package cmd

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/dlive-cli/dlive/auth"
	"github.com/dlive-cli/dlive/icon"
	"github.com/dlive-cli/dlive/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"
)

func init() {
	rootCmd.AddCommand(authCmd)
}

// authCmd manages the optional DLive access token.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the DLive access token sent with requests",
	Long: fmt.Sprintf(`Store, show or remove the DLive access token kept in the system keyring.
The %s environment variable takes precedence over the stored token.`, auth.EnvToken),
}

func init() {
	authCmd.AddCommand(authSetCmd)
	authSetCmd.Flags().StringP("token", "t", "", "The token to store, asked for when omitted")
}

var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store an access token in the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		token := lo.Must(cmd.Flags().GetString("token"))
		if token == "" {
			password := survey.Password{
				Message: "DLive access token",
			}
			handleErr(survey.AskOne(&password, &token, survey.WithValidator(survey.Required)))
		}

		handleErr(auth.SetToken(token))
		fmt.Printf("%s Token stored\n", icon.Get(icon.Success))
	},
}

func init() {
	authCmd.AddCommand(authGetCmd)
	authGetCmd.Flags().BoolP("reveal", "r", false, "Print the whole token")
}

var authGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the stored access token",
	Run: func(cmd *cobra.Command, args []string) {
		token, err := auth.GetToken()
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println(style.Faint("No token stored"))
			return
		}
		handleErr(err)

		if !lo.Must(cmd.Flags().GetBool("reveal")) {
			token = mask(token)
		}
		fmt.Println(token)
	},
}

// mask hides all but the last four characters of token.
func mask(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}

func init() {
	authCmd.AddCommand(authDeleteCmd)
}

var authDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the stored access token",
	Run: func(cmd *cobra.Command, args []string) {
		var confirm bool
		prompt := survey.Confirm{
			Message: "Remove the stored access token?",
			Default: false,
		}
		handleErr(survey.AskOne(&prompt, &confirm))
		if !confirm {
			return
		}

		handleErr(auth.DeleteToken())
		fmt.Printf("%s Token removed\n", icon.Get(icon.Success))
	},
}
