package listrepos

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/go-github/v47/github"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	cmdutil "github.com/web-security-repos/codeql-client/internal/cmd"
	"github.com/web-security-repos/codeql-client/internal/config"
	"github.com/web-security-repos/codeql-client/internal/reporter"
	"github.com/web-security-repos/codeql-client/pkg/shared/errors"
	"github.com/web-security-repos/codeql-client/pkg/shared/files"
	"github.com/web-security-repos/codeql-client/pkg/shared/vcsurl"
)

// RunOptionsListRepos holds the arguments for the list-repos command.
type RunOptionsListRepos struct {
	Organization string
	Prefix       string
	OutputPath   string
}

const defaultOutputName = "repositories.json"

// Global variables for configuration and command arguments
var (
	AppConfig        *config.Config
	logger           hclog.Logger
	listReposOptions RunOptionsListRepos
	exampleListUsage = `  # List the repositories of the default organization
  codeql-client list-repos

  # List the repositories of an organization and keep only names starting with "lab-"
  codeql-client list-repos --org octo-org --prefix lab-

  # List the repositories of an organization given by URL and save them as JSON
  codeql-client list-repos -o /path/to/repositories.json https://github.com/octo-org`
)

// ListReposCmd represents the command listing organization repositories.
var ListReposCmd = &cobra.Command{
	Use:                   "list-repos [--org ORG | URL] [--prefix PREFIX] [--output/-o PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleListUsage,
	Short:                 "List every repository of a GitHub organization",
	Long: `Pages through the repositories of a GitHub organization, 100 per page, and
prints them followed by the repositories whose name starts with the prefix.
If a page fails, the repositories fetched so far are still printed and saved.`,
	RunE: runListReposCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runListReposCommand(cmd *cobra.Command, args []string) error {
	if err := validateListReposArgs(&listReposOptions, args); err != nil {
		logger.Error("invalid list-repos arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid list-repos arguments: %w", err), 1)
	}

	org, err := resolveOrganization(&listReposOptions, args)
	if err != nil {
		logger.Error("failed to resolve organization", "error", err)
		return errors.NewCommandError(err, 1)
	}

	service, err := cmdutil.NewService(AppConfig, logger)
	if err != nil {
		return err
	}

	r := reporter.New(service, logger, os.Stdout, AppConfig.GitHub.BaseURL, "")
	repos, listErr := r.ListOrgRepositories(context.Background(), org, listReposOptions.Prefix)

	if listReposOptions.OutputPath != "" {
		path, err := saveRepositories(listReposOptions.OutputPath, repos)
		if err != nil {
			logger.Error("failed to write result", "error", err)
			return errors.NewCommandError(err, 1)
		}
		logger.Info("results saved to file", "path", path)
	}

	if listErr != nil {
		logger.Warn("listing stopped early, partial results shown", "org", org, "count", len(repos))
		return nil
	}
	logger.Info("list-repos command completed successfully", "org", org, "count", len(repos))
	return nil
}

func resolveOrganization(options *RunOptionsListRepos, args []string) (string, error) {
	if cmdutil.DetermineMode(args) == cmdutil.ModeSingleURL {
		return vcsurl.ParseOrganization(args[0])
	}
	org := options.Organization
	if AppConfig != nil {
		org = config.SetThen(org, AppConfig.GitHub.Organization)
	}
	return vcsurl.ParseOrganization(config.SetThen(org, config.DefaultOwner))
}

func saveRepositories(outputPath string, repos []*github.Repository) (string, error) {
	path, folder, err := files.DetermineFileFullPath(outputPath, defaultOutputName)
	if err != nil {
		return "", err
	}
	if err := files.CreateFolderIfNotExists(folder); err != nil {
		return "", err
	}

	if repos == nil {
		repos = []*github.Repository{}
	}
	data, err := json.MarshalIndent(repos, "", "    ")
	if err != nil {
		return "", fmt.Errorf("error marshaling the result data: %w", err)
	}
	if err := files.WriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

func init() {
	ListReposCmd.Flags().StringVar(&listReposOptions.Organization, "org", "", "Name of the organization (default from config, Web-Security-Repos).")
	ListReposCmd.Flags().StringVar(&listReposOptions.Prefix, "prefix", "test-", "Name prefix of the repositories listed separately. Empty disables the filtered list.")
	ListReposCmd.Flags().StringVarP(&listReposOptions.OutputPath, "output", "o", "", "Path to the output file or directory where the repository list is saved as JSON.")
	ListReposCmd.Flags().BoolP("help", "h", false, "Show help for the list-repos command.")
}
