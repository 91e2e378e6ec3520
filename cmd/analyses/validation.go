package analyses

import (
	cmdutil "github.com/web-security-repos/codeql-client/internal/cmd"
)

// validateAnalysesArgs validates the repository selection of the analyses commands.
func validateAnalysesArgs(options *RunOptionsAnalyses, args []string) error {
	return cmdutil.ValidateTargetArgs(&options.TargetOptions, args)
}
