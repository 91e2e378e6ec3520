package shared

import (
	"github.com/spf13/pflag"
)

// HasFlags reports whether any flag of the set was provided on the command line.
func HasFlags(flags *pflag.FlagSet) bool {
	hasFlags := false
	flags.Visit(func(f *pflag.Flag) {
		hasFlags = true
	})
	return hasFlags
}
