package smoke

import (
	"fmt"
	"time"

	cmdutil "github.com/web-security-repos/codeql-client/internal/cmd"
)

// validateSmokeArgs validates the arguments provided to the smoke command.
func validateSmokeArgs(options *RunOptionsSmoke, args []string) error {
	if err := cmdutil.ValidateTargetArgs(&options.TargetOptions, args); err != nil {
		return err
	}
	if options.Timeout <= 0 {
		return fmt.Errorf("the 'timeout' flag must be a positive integer")
	}
	return nil
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
