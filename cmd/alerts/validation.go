package alerts

import (
	cmdutil "github.com/web-security-repos/codeql-client/internal/cmd"
)

// validateAlertsArgs validates the repository selection of the alerts commands.
func validateAlertsArgs(options *cmdutil.TargetOptions, args []string) error {
	return cmdutil.ValidateTargetArgs(options, args)
}
