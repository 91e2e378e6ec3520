package main

import (
	"os"

	"github.com/web-security-repos/codeql-client/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
