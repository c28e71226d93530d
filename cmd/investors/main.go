package main

import (
	"investorparser/cmd/investors/commands"
	"investorparser/pkg/serviceutil"
)

func main() {
	ctx, stop := serviceutil.SignalContext()
	defer stop()
	commands.ExecuteContext(ctx)
}
