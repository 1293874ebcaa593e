package main

import (
	"github.com/poolsuite-cli/poolsuite/cmd"
	"github.com/poolsuite-cli/poolsuite/config"
	"github.com/poolsuite-cli/poolsuite/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
