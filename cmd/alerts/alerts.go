package alerts

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	cmdutil "github.com/web-security-repos/codeql-client/internal/cmd"
	"github.com/web-security-repos/codeql-client/internal/config"
	"github.com/web-security-repos/codeql-client/internal/reporter"
	"github.com/web-security-repos/codeql-client/pkg/shared/errors"
)

// Global variables for configuration and command arguments
var (
	AppConfig     *config.Config
	logger        hclog.Logger
	alertsOptions cmdutil.TargetOptions

	exampleAlertsUsage = `  # List the code scanning alerts of the default repository
  codeql-client alerts list

  # List the alerts of a repository given by URL
  codeql-client alerts list https://github.com/octo-org/octo-repo`
)

// AlertsCmd groups the code scanning alert commands.
var AlertsCmd = &cobra.Command{
	Use:                   "alerts list [--owner OWNER --repo REPO | URL]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleAlertsUsage,
	Short:                 "Work with code scanning alerts",
}

var listCmd = &cobra.Command{
	Use:                   "list [--owner OWNER --repo REPO | URL]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "List code scanning alerts of a repository",
	RunE:                  runListCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runListCommand(cmd *cobra.Command, args []string) error {
	if err := validateAlertsArgs(&alertsOptions, args); err != nil {
		logger.Error("invalid alerts arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid alerts arguments: %w", err), 1)
	}

	target, err := cmdutil.ResolveTarget(AppConfig, &alertsOptions, args)
	if err != nil {
		logger.Error("failed to resolve target", "error", err)
		return errors.NewCommandError(err, 1)
	}

	service, err := cmdutil.NewService(AppConfig, logger)
	if err != nil {
		return err
	}

	r := reporter.New(service, logger, os.Stdout, AppConfig.GitHub.BaseURL, "")
	r.ListAlerts(context.Background(), target)
	return nil
}

func init() {
	AlertsCmd.PersistentFlags().StringVar(&alertsOptions.Owner, "owner", "", "Owner of the repository (default from config, Web-Security-Repos).")
	AlertsCmd.PersistentFlags().StringVar(&alertsOptions.Repository, "repo", "", "Name of the repository (default from config, test-reflected-xss-nodejs).")

	AlertsCmd.AddCommand(listCmd)
}
