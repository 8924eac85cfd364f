package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/anisan-cli/anisync/auth"
	"github.com/anisan-cli/anisync/config"
	"github.com/anisan-cli/anisync/fault"
	"github.com/anisan-cli/anisync/icon"
	"github.com/anisan-cli/anisync/integration"
	"github.com/anisan-cli/anisync/open"
	"github.com/anisan-cli/anisync/provider"
	"github.com/anisan-cli/anisync/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// authorizer is implemented by adapters whose secret is an authorization code.
type authorizer interface {
	AuthorizeURL() string
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd, authLogoutCmd, authStatusCmd)

	authLoginCmd.Flags().StringP("username", "u", "", "Account to log in as")
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage provider credentials",
	Long:  "Manage provider credentials. Secrets are kept in the system keyring.",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the credentials of the account and verify them",
	Run: func(cmd *cobra.Command, args []string) {
		i := currentIntegration()

		username := lo.Must(cmd.Flags().GetString("username"))
		if username == "" {
			username = i.Username()
		}
		if username == "" {
			handleErr(survey.AskOne(&survey.Input{
				Message: fmt.Sprintf("%s username:", i.Name),
			}, &username, survey.WithValidator(survey.Required)))
		}
		if username != i.Username() {
			viper.Set(i.UsernameKey, username)
			handleErr(config.Write())
		}

		account := provider.Account{Provider: i.ID, Username: username}
		p, err := i.Create(provider.Options{Account: account, Reauth: promptReauthorization})
		handleErr(err)

		if a, ok := p.(authorizer); ok {
			authURL := a.AuthorizeURL()
			fmt.Printf("%s Authorize anisync at\n%s\n", icon.Get(icon.Link), style.Faint(authURL))
			if err := open.URL(authURL); err != nil {
				fmt.Println("Open the link above in your browser")
			}
		}

		var secret string
		handleErr(survey.AskOne(&survey.Password{
			Message: fmt.Sprintf("%s %s:", i.Name, i.Secret),
		}, &secret, survey.WithValidator(survey.Required)))

		store := auth.Keyring{}
		handleErr(store.SetSecret(auth.Key(i.ID, username), secret))

		ok, err := p.VerifyCredentials(cmd.Context())
		handleErr(err)
		if !ok {
			handleErr(fault.New(fault.Auth, i.ID, "%s rejected the credentials", i.Name))
		}

		fmt.Printf("%s Logged in to %s as %s\n", icon.Get(icon.Success), style.Provider(i.ID, i.Name), style.Bold(username))
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored credentials of the account",
	Run: func(cmd *cobra.Command, args []string) {
		i := currentIntegration()
		requireUsername(i)

		handleErr(auth.Keyring{}.DeleteSecret(auth.Key(i.ID, i.Username())))
		fmt.Printf("%s Logged out of %s\n", icon.Get(icon.Success), style.Provider(i.ID, i.Name))
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the stored credentials still work",
	Run: func(cmd *cobra.Command, args []string) {
		i := currentIntegration()
		requireUsername(i)

		_, p := newAdapter()
		ok, err := p.VerifyCredentials(cmd.Context())
		if fault.Is(err, fault.Auth) || (err == nil && !ok) {
			fmt.Printf("%s Not logged in to %s, run %s\n", icon.Get(icon.Warn), style.Provider(i.ID, i.Name), style.Bold("anisync auth login"))
			return
		}
		handleErr(err)

		fmt.Printf("%s Logged in to %s as %s\n", icon.Get(icon.Success), style.Provider(i.ID, i.Name), style.Bold(p.Account().Username))
	},
}

func requireUsername(i *integration.Integration) {
	if i.Username() == "" {
		handleErr(fault.New(fault.Validation, i.ID, "%s is not set, run anisync auth login", i.UsernameKey))
	}
}
