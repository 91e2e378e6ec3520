package smoke

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	cmdutil "github.com/web-security-repos/codeql-client/internal/cmd"
	"github.com/web-security-repos/codeql-client/internal/config"
	"github.com/web-security-repos/codeql-client/internal/console"
	"github.com/web-security-repos/codeql-client/internal/githubapi"
	"github.com/web-security-repos/codeql-client/internal/smoke"
	"github.com/web-security-repos/codeql-client/pkg/shared"
	"github.com/web-security-repos/codeql-client/pkg/shared/errors"
)

// RunOptionsSmoke holds the arguments for the smoke command.
type RunOptionsSmoke struct {
	cmdutil.TargetOptions
	Timeout int
}

// Global variables for configuration and command arguments
var (
	AppConfig    *config.Config
	logger       hclog.Logger
	smokeOptions RunOptionsSmoke

	exampleSmokeUsage = `  # Check the code scanning endpoints of the default repository
  codeql-client smoke

  # Check another repository without a token; 401 answers still pass
  GITHUB_TOKEN= codeql-client smoke --owner octo-org --repo octo-repo`
)

// SmokeCmd represents the command checking that the API endpoints respond.
var SmokeCmd = &cobra.Command{
	Use:                   "smoke [--owner OWNER --repo REPO | URL] [--timeout SECONDS]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleSmokeUsage,
	Short:                 "Check that the code scanning endpoints are reachable",
	Long: `Calls every code scanning endpoint once, one after another, and classifies the
answers. 200 and 401 pass, 404 is a warning, anything else fails. An invalid
endpoint must be rejected. Exits with status 1 when any check fails.

Runs without a token; "dummy" is sent when GITHUB_TOKEN is not set.`,
	RunE: runSmokeCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runSmokeCommand(cmd *cobra.Command, args []string) error {
	if err := validateSmokeArgs(&smokeOptions, args); err != nil {
		logger.Error("invalid smoke arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid smoke arguments: %w", err), 1)
	}

	target, err := cmdutil.ResolveTarget(AppConfig, &smokeOptions.TargetOptions, args)
	if err != nil {
		logger.Error("failed to resolve target", "error", err)
		return errors.NewCommandError(err, 1)
	}
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		logger.Info("no target provided, using the configured repository", "target", target.String())
	}

	token := config.TokenOrDefault(AppConfig, smoke.FallbackToken)
	client, err := githubapi.NewFromConfig(AppConfig, logger.Named("http"), token, githubapi.WithUserAgent(smoke.UserAgent))
	if err != nil {
		logger.Error("failed to initialize GitHub client", "error", err)
		return errors.NewCommandError(err, 1)
	}

	out := os.Stdout
	console.Banner(out, "GitHub CodeQL API Client Test Suite",
		"Repository: "+target.String(),
		"Token: "+tokenState(token),
	)

	checker := smoke.NewChecker(client, logger, secondsToDuration(smokeOptions.Timeout))
	results := checker.Run(context.Background(), smoke.Plan(target), func(r smoke.CheckResult) {
		console.CheckResult(out, r)
	})

	summary := smoke.Summarize(results)
	console.CheckSummary(out, summary)

	if summary.Failed > 0 {
		return errors.NewCommandError(fmt.Errorf("%d of %d smoke checks failed", summary.Failed, summary.Total()), 1)
	}
	return nil
}

func tokenState(token string) string {
	if token == smoke.FallbackToken {
		return "Not set (using dummy token)"
	}
	return "Set"
}

func init() {
	SmokeCmd.Flags().StringVar(&smokeOptions.Owner, "owner", "", "Owner of the repository (default from config, Web-Security-Repos).")
	SmokeCmd.Flags().StringVar(&smokeOptions.Repository, "repo", "", "Name of the repository (default from config, test-reflected-xss-nodejs).")
	SmokeCmd.Flags().IntVar(&smokeOptions.Timeout, "timeout", 10, "Timeout of each check in seconds.")
	SmokeCmd.Flags().BoolP("help", "h", false, "Show help for the smoke command.")
}
