package codeql

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	cmdutil "github.com/web-security-repos/codeql-client/internal/cmd"
	"github.com/web-security-repos/codeql-client/internal/config"
	"github.com/web-security-repos/codeql-client/internal/reporter"
	"github.com/web-security-repos/codeql-client/pkg/shared"
	"github.com/web-security-repos/codeql-client/pkg/shared/errors"
)

// RunOptionsCodeQL holds the arguments for the codeql command.
type RunOptionsCodeQL struct {
	cmdutil.TargetOptions
	OutputDir string
}

// Global variables for configuration and command arguments
var (
	AppConfig     *config.Config
	logger        hclog.Logger
	codeqlOptions RunOptionsCodeQL

	exampleCodeQLUsage = `  # Run every code scanning call against the default repository
  codeql-client codeql

  # Run against a specific repository and save the SARIF report to a folder
  codeql-client codeql --owner octo-org --repo octo-repo --output-dir /tmp/reports

  # Run against a repository given by URL
  codeql-client codeql https://github.com/octo-org/octo-repo`
)

// CodeQLCmd represents the command running the complete code scanning flow.
var CodeQLCmd = &cobra.Command{
	Use:                   "codeql [--owner OWNER --repo REPO | URL] [--output-dir PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleCodeQLUsage,
	Short:                 "List analyses and alerts, then fetch the latest analysis and its SARIF report",
	Long: `Lists the code scanning analyses and alerts of a repository. When an analysis
exists, prints the details of the first one and saves its SARIF report as
sarif-report-{id}.json. Each step reports its own failure and the flow continues.

The GitHub token is read from the GITHUB_TOKEN environment variable.`,
	RunE: runCodeQLCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runCodeQLCommand(cmd *cobra.Command, args []string) error {
	if err := validateCodeQLArgs(&codeqlOptions, args); err != nil {
		logger.Error("invalid codeql arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid codeql arguments: %w", err), 1)
	}

	target, err := cmdutil.ResolveTarget(AppConfig, &codeqlOptions.TargetOptions, args)
	if err != nil {
		logger.Error("failed to resolve target", "error", err)
		return errors.NewCommandError(err, 1)
	}
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		logger.Info("no target provided, using the configured repository", "target", target.String())
	}

	service, err := cmdutil.NewService(AppConfig, logger)
	if err != nil {
		return err
	}

	r := reporter.New(service, logger, os.Stdout, AppConfig.GitHub.BaseURL, codeqlOptions.OutputDir)
	r.Run(context.Background(), target)

	logger.Debug("codeql command completed", "target", target.String())
	return nil
}

func init() {
	CodeQLCmd.Flags().StringVar(&codeqlOptions.Owner, "owner", "", "Owner of the repository (default from config, Web-Security-Repos).")
	CodeQLCmd.Flags().StringVar(&codeqlOptions.Repository, "repo", "", "Name of the repository (default from config, test-reflected-xss-nodejs).")
	CodeQLCmd.Flags().StringVar(&codeqlOptions.OutputDir, "output-dir", ".", "Folder where the SARIF report is saved.")
	CodeQLCmd.Flags().BoolP("help", "h", false, "Show help for the codeql command.")
}
