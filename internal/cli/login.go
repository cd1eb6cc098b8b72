package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/sky-shelf/internal/app"
	"github.com/MKhiriev/sky-shelf/internal/validators"
	"github.com/MKhiriev/sky-shelf/models"
)

func newLoginCommand(deps Deps) *cobra.Command {
	var identifier, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Create a session with a handle and an app password",
		Long: `Creates a Bluesky session and stores it sealed in the local cache.
The handle and app password default to the configured APP_IDENTIFIER and
APP_APP_PASSWORD.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			creds := models.Credentials{
				Identifier: strings.TrimSpace(identifier),
				Password:   password,
			}
			if creds.Identifier == "" {
				creds.Identifier = deps.Credentials.Identifier
			}
			if creds.Password == "" {
				creds.Password = deps.Credentials.Password
			}

			if err := validators.NewQueryValidator().Validate(cmd.Context(), creds); err != nil {
				return errors.Join(ErrMissingCredentials, err)
			}

			session, err := deps.Services.SessionService.Login(cmd.Context(), creds)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s @%s (%s)\n", app.MsgLoggedIn, session.Handle, session.DID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&identifier, "identifier", "i", "", "handle or DID")
	cmd.Flags().StringVarP(&password, "password", "p", "", "app password")

	return cmd
}
