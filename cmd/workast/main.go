package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/workast/workast-sdk-go/internal/cliconfig"
	"github.com/workast/workast-sdk-go/pkg/workast"
)

// version is overridden via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *cliconfig.Config
	logger  *zap.Logger
	out     io.Writer
	errOut  io.Writer
}

// client builds the SDK client on demand so that commands such as version
// and login work without a token.
func (a *app) client() (*workast.Client, error) {
	return a.cfg.NewClient(a.logger)
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "workast",
		Short: "Workast API command-line client",
		Long: `workast talks to the Workast task-management API.

Settings come from ~/.workast/config.yaml, WORKAST_* environment variables
and flags, in increasing order of precedence:

  export WORKAST_TOKEN=wat::...
  workast tasks get 5c1a... 5c1b...
  workast call --method POST --path /task/search --data '{"text":"invoice"}'`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliconfig.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg

			if cfg.Verbose {
				logger, err := zap.NewProduction()
				if err != nil {
					return fmt.Errorf("init logger: %w", err)
				}
				a.logger = logger
			} else {
				a.logger = zap.NewNop()
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ~/.workast/config.yaml)")
	pf.String("token", "", "API token")
	pf.String("api-url", "", "API base URL (default "+workast.DefaultAPIBaseURL+")")
	pf.String("auth-url", "", "Auth base URL (default "+workast.DefaultAuthBaseURL+")")
	pf.Int("timeout-ms", 0, "Request timeout in milliseconds (default 120000)")
	pf.Int("max-retries", 0, "Retries for failed idempotent requests")
	pf.StringP("output", "o", "", "Output format: text or json")
	pf.String("team", "", "Impersonate this team ID")
	pf.String("user", "", "Impersonate this user ID")
	pf.Float64("rate-limit", 0, "Maximum requests per second; 0 disables limiting")
	pf.BoolP("verbose", "v", false, "Log requests to stderr")

	for key, flag := range map[string]string{
		cliconfig.KeyToken:       "token",
		cliconfig.KeyAPIBaseURL:  "api-url",
		cliconfig.KeyAuthBaseURL: "auth-url",
		cliconfig.KeyTimeoutMS:   "timeout-ms",
		cliconfig.KeyMaxRetries:  "max-retries",
		cliconfig.KeyOutput:      "output",
		cliconfig.KeyTeam:        "team",
		cliconfig.KeyUser:        "user",
		cliconfig.KeyRateLimit:   "rate-limit",
		cliconfig.KeyVerbose:     "verbose",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		newCallCmd(a),
		newTasksCmd(a),
		newListsCmd(a),
		newTagsCmd(a),
		newUsersCmd(a),
		newNotificationsCmd(a),
		newLoginCmd(a),
		newVersionCmd(a),
	)
	return root
}

// ── version ──────────────────────────────────────────────────────────────────

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI and SDK versions",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "workast %s (sdk %s)\n", version, workast.Version)
		},
	}
}
