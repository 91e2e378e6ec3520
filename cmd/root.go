package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/web-security-repos/codeql-client/cmd/alerts"
	"github.com/web-security-repos/codeql-client/cmd/analyses"
	"github.com/web-security-repos/codeql-client/cmd/codeql"
	listrepos "github.com/web-security-repos/codeql-client/cmd/list-repos"
	"github.com/web-security-repos/codeql-client/cmd/smoke"
	"github.com/web-security-repos/codeql-client/cmd/version"
	"github.com/web-security-repos/codeql-client/internal/config"
	"github.com/web-security-repos/codeql-client/internal/logger"
	"github.com/web-security-repos/codeql-client/pkg/shared/errors"
)

const defaultConfigFile = "config.yml"

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "codeql-client [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "codeql-client reads CodeQL code scanning results from the GitHub REST API.",
		Long: `codeql-client lists code scanning analyses and alerts, downloads SARIF reports,
lists organization repositories and smoke tests the code scanning endpoints.

The GitHub token is read from the GITHUB_TOKEN environment variable.`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", defaultConfigFile, "Path to the YAML config file. A missing default file is ignored.")

	rootCmd.AddCommand(codeql.CodeQLCmd)
	rootCmd.AddCommand(analyses.AnalysesCmd)
	rootCmd.AddCommand(alerts.AlertsCmd)
	rootCmd.AddCommand(listrepos.ListReposCmd)
	rootCmd.AddCommand(smoke.SmokeCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return errors.ExitCode(err)
	}
	return 0
}

func initConfig() {
	var err error

	optional := cfgFile == defaultConfigFile
	AppConfig, err = config.LoadConfig(cfgFile, optional)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize config: %v\n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	codeql.Init(AppConfig, logger.NewLogger(AppConfig, "core-codeql"))
	analyses.Init(AppConfig, logger.NewLogger(AppConfig, "core-analyses"))
	alerts.Init(AppConfig, logger.NewLogger(AppConfig, "core-alerts"))
	listrepos.Init(AppConfig, logger.NewLogger(AppConfig, "core-list-repos"))
	smoke.Init(AppConfig, logger.NewLogger(AppConfig, "core-smoke"))
	version.Init(AppConfig)
}
