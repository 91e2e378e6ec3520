package analyses

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	cmdutil "github.com/web-security-repos/codeql-client/internal/cmd"
	"github.com/web-security-repos/codeql-client/internal/config"
	"github.com/web-security-repos/codeql-client/internal/reporter"
	"github.com/web-security-repos/codeql-client/pkg/shared/errors"
	"github.com/web-security-repos/codeql-client/pkg/shared/vcsurl"
)

// RunOptionsAnalyses holds the arguments for the analyses subcommands.
type RunOptionsAnalyses struct {
	cmdutil.TargetOptions
	OutputDir string
}

// Global variables for configuration and command arguments
var (
	AppConfig       *config.Config
	logger          hclog.Logger
	analysesOptions RunOptionsAnalyses

	exampleAnalysesUsage = `  # List the analyses of the default repository
  codeql-client analyses list

  # Print the details of one analysis
  codeql-client analyses get 12345 --owner octo-org --repo octo-repo

  # Download the SARIF report of one analysis into a folder
  codeql-client analyses sarif 12345 --output-dir /tmp/reports`
)

// AnalysesCmd groups the code scanning analysis commands.
var AnalysesCmd = &cobra.Command{
	Use:                   "analyses {list | get ID | sarif ID} [--owner OWNER --repo REPO]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleAnalysesUsage,
	Short:                 "Work with code scanning analyses",
}

var listCmd = &cobra.Command{
	Use:                   "list [--owner OWNER --repo REPO | URL]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "List code scanning analyses of a repository",
	RunE:                  runListCommand,
}

var getCmd = &cobra.Command{
	Use:                   "get ID [--owner OWNER --repo REPO]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "Print the details of a code scanning analysis",
	RunE:                  runGetCommand,
}

var sarifCmd = &cobra.Command{
	Use:                   "sarif ID [--owner OWNER --repo REPO] [--output-dir PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "Download the SARIF report of a code scanning analysis",
	RunE:                  runSARIFCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runListCommand(cmd *cobra.Command, args []string) error {
	r, target, err := prepare(args)
	if err != nil {
		return err
	}
	r.ListAnalyses(context.Background(), target)
	return nil
}

func runGetCommand(cmd *cobra.Command, args []string) error {
	id, err := parseAnalysisID(args)
	if err != nil {
		logger.Error("invalid analyses arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid analyses arguments: %w", err), 1)
	}
	r, target, err := prepare(nil)
	if err != nil {
		return err
	}
	r.ShowAnalysis(context.Background(), target, id)
	return nil
}

func runSARIFCommand(cmd *cobra.Command, args []string) error {
	id, err := parseAnalysisID(args)
	if err != nil {
		logger.Error("invalid analyses arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid analyses arguments: %w", err), 1)
	}
	r, target, err := prepare(nil)
	if err != nil {
		return err
	}
	r.FetchSARIF(context.Background(), target, id)
	return nil
}

func prepare(args []string) (*reporter.Reporter, vcsurl.Target, error) {
	if err := validateAnalysesArgs(&analysesOptions, args); err != nil {
		logger.Error("invalid analyses arguments", "error", err)
		return nil, vcsurl.Target{}, errors.NewCommandError(fmt.Errorf("invalid analyses arguments: %w", err), 1)
	}

	target, err := cmdutil.ResolveTarget(AppConfig, &analysesOptions.TargetOptions, args)
	if err != nil {
		logger.Error("failed to resolve target", "error", err)
		return nil, vcsurl.Target{}, errors.NewCommandError(err, 1)
	}

	service, err := cmdutil.NewService(AppConfig, logger)
	if err != nil {
		return nil, vcsurl.Target{}, err
	}
	return reporter.New(service, logger, os.Stdout, AppConfig.GitHub.BaseURL, analysesOptions.OutputDir), target, nil
}

func parseAnalysisID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("exactly one analysis ID is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("analysis ID %q must be a positive integer", args[0])
	}
	return id, nil
}

func init() {
	AnalysesCmd.PersistentFlags().StringVar(&analysesOptions.Owner, "owner", "", "Owner of the repository (default from config, Web-Security-Repos).")
	AnalysesCmd.PersistentFlags().StringVar(&analysesOptions.Repository, "repo", "", "Name of the repository (default from config, test-reflected-xss-nodejs).")
	sarifCmd.Flags().StringVar(&analysesOptions.OutputDir, "output-dir", ".", "Folder where the SARIF report is saved.")

	AnalysesCmd.AddCommand(listCmd, getCmd, sarifCmd)
}
