package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/workast/workast-sdk-go/internal/cliconfig"
	"github.com/workast/workast-sdk-go/pkg/workast"
)

// ── login ────────────────────────────────────────────────────────────────────

func newLoginCmd(a *app) *cobra.Command {
	var (
		clientID     string
		clientSecret string
		redirectURL  string
		code         string
		scopes       []string
	)

	cmd := &cobra.Command{
		Use:   "login [token]",
		Short: "Store an API token in the config file",
		Long: `Store an API token in the config file.

Pass a token directly, or use the OAuth authorization code flow:

  workast login wat::...
  workast login --client-id ID --client-secret S --redirect-url URL
      (prints the URL to open; then)
  workast login --client-id ID --client-secret S --redirect-url URL --code CODE`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfgFile
			if path == "" {
				p, err := cliconfig.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}

			if len(args) == 1 {
				if err := cliconfig.SaveToken(path, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Token saved to %s\n", path)
				return nil
			}

			if clientID == "" {
				return errors.New("pass a token or --client-id for the OAuth flow")
			}
			oc := workast.OAuth2Config(a.cfg.AuthBaseURL, clientID, clientSecret, redirectURL, scopes...)

			if code == "" {
				state := uuid.NewString()
				fmt.Fprintln(a.out, "Open this URL, approve access, then rerun with --code:")
				fmt.Fprintln(a.out, oc.AuthCodeURL(state))
				return nil
			}

			tok, err := workast.ExchangeCode(cmd.Context(), oc, nil, code)
			if err != nil {
				return err
			}
			if err := cliconfig.SaveToken(path, tok.AccessToken); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Token saved to %s\n", path)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&clientID, "client-id", "", "OAuth client ID")
	f.StringVar(&clientSecret, "client-secret", "", "OAuth client secret")
	f.StringVar(&redirectURL, "redirect-url", "", "OAuth redirect URL registered for the client")
	f.StringVar(&code, "code", "", "Authorization code returned to the redirect URL")
	f.StringSliceVar(&scopes, "scope", nil, "OAuth scopes to request")
	return cmd
}
