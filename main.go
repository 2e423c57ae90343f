// Package main is the entry point for the dlive application.
package main

import (
	"github.com/dlive-cli/dlive/cmd"
	"github.com/dlive-cli/dlive/config"
	"github.com/dlive-cli/dlive/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
