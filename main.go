// Package main is the entry point of anisync.
package main

import (
	"github.com/anisan-cli/anisync/cmd"
	"github.com/anisan-cli/anisync/config"
	"github.com/anisan-cli/anisync/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
