package listrepos

import (
	"fmt"
)

// validateListReposArgs validates the arguments provided to the list-repos command.
func validateListReposArgs(options *RunOptionsListRepos, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("invalid argument(s) received, only one positional argument is allowed")
	}
	if len(args) == 1 && options.Organization != "" {
		return fmt.Errorf("you cannot use the 'org' flag and a target URL at the same time")
	}
	return nil
}
