// Package main is the entry point for echodl.
package main

import (
	"github.com/echodl/echodl/cmd"
	"github.com/echodl/echodl/config"
	"github.com/echodl/echodl/log"
	"github.com/echodl/echodl/network"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())
	network.Setup()

	cmd.Execute()
}
