package cmd

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/web-security-repos/codeql-client/internal/codeql"
	"github.com/web-security-repos/codeql-client/internal/config"
	"github.com/web-security-repos/codeql-client/internal/githubapi"
	"github.com/web-security-repos/codeql-client/pkg/shared/errors"
	"github.com/web-security-repos/codeql-client/pkg/shared/vcsurl"
)

// Mode constants
const (
	ModeSingleURL = "single-url"
	ModeFlags     = "flags"
)

// TargetOptions holds the repository selection flags shared by commands.
type TargetOptions struct {
	Owner      string
	Repository string
}

// DetermineMode determines the mode based on the provided arguments.
func DetermineMode(args []string) string {
	if len(args) > 0 {
		return ModeSingleURL
	}
	return ModeFlags
}

// ValidateTargetArgs checks that a repository is selected either by flags or
// by one positional reference, never both.
func ValidateTargetArgs(options *TargetOptions, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("invalid argument(s) received, only one positional argument is allowed")
	}
	if len(args) == 1 && (options.Owner != "" || options.Repository != "") {
		return fmt.Errorf("you cannot use 'owner' and 'repo' flags and a target reference at the same time")
	}
	return nil
}

// ResolveTarget returns the repository selected by args or flags, falling back
// to the configured owner and repository.
func ResolveTarget(cfg *config.Config, options *TargetOptions, args []string) (vcsurl.Target, error) {
	switch DetermineMode(args) {
	case ModeSingleURL:
		target, err := vcsurl.ParseTarget(args[0])
		if err != nil {
			return vcsurl.Target{}, fmt.Errorf("failed to extract data from provided reference %q: %w", args[0], err)
		}
		return target, nil
	default:
		target := vcsurl.Target{
			Namespace:  config.SetThen(options.Owner, config.DefaultOwner),
			Repository: config.SetThen(options.Repository, config.DefaultRepository),
		}
		if cfg != nil {
			target.Namespace = config.SetThen(options.Owner, cfg.GitHub.Owner)
			target.Repository = config.SetThen(options.Repository, cfg.GitHub.Repository)
		}
		return target, nil
	}
}

// NewService loads the credential and builds the code scanning service.
// A missing credential is a configuration error with exit code 1.
func NewService(cfg *config.Config, logger hclog.Logger) (*codeql.Service, error) {
	token, err := config.LoadToken(cfg)
	if err != nil {
		logger.Error("missing credential", "error", err)
		return nil, errors.NewCommandError(err, 1)
	}

	client, err := githubapi.NewFromConfig(cfg, logger.Named("http"), token)
	if err != nil {
		logger.Error("failed to initialize GitHub client", "error", err)
		return nil, errors.NewCommandError(err, 1)
	}
	return codeql.NewService(client, logger), nil
}
