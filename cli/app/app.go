package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/solpact/solpact/cli/contract"
	"github.com/solpact/solpact/cli/util"
	"github.com/solpact/solpact/cli/wallet"
	"github.com/solpact/solpact/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "solpact\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates a solpact instance of [cli.App] with all commands included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "solpact"
	ctl.Version = config.Version
	ctl.Usage = "client for the on-chain escrow program"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, contract.NewCommands()...)
	ctl.Commands = append(ctl.Commands, wallet.NewCommands()...)
	ctl.Commands = append(ctl.Commands, util.NewCommands()...)
	return ctl
}
