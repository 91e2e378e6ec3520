package codeql

import (
	"fmt"

	cmdutil "github.com/web-security-repos/codeql-client/internal/cmd"
)

// validateCodeQLArgs validates the arguments provided to the codeql command.
func validateCodeQLArgs(options *RunOptionsCodeQL, args []string) error {
	if err := cmdutil.ValidateTargetArgs(&options.TargetOptions, args); err != nil {
		return err
	}
	if options.OutputDir == "" {
		return fmt.Errorf("the 'output-dir' flag must not be empty")
	}
	return nil
}
