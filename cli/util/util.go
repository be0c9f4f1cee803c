/*
Package util implements the program's two diagnostic operations, handy for
checking that the configured program is reachable and dispatching: echo logs
a string on-chain, square logs a number squared.
*/
package util

import (
	"fmt"
	"strconv"

	"github.com/solpact/solpact/cli/options"
	"github.com/solpact/solpact/pkg/crypto/keys"
	"github.com/solpact/solpact/pkg/escrow"
	"github.com/solpact/solpact/pkg/transaction"
	"github.com/urfave/cli"
)

// NewCommands returns the 'util' command.
func NewCommands() []cli.Command {
	return []cli.Command{{
		Name:  "util",
		Usage: "diagnostic program operations",
		Subcommands: []cli.Command{
			{
				Name:      "echo",
				Usage:     "make the program log the given value",
				UsageText: "solpact util echo [options] <keypair> <value>",
				Action:    echo,
				Flags:     options.Network,
			},
			{
				Name:      "square",
				Usage:     "make the program log the square of the given number",
				UsageText: "solpact util square [options] <keypair> <number>",
				Action:    square,
				Flags:     options.Network,
			},
		},
	}}
}

func echo(ctx *cli.Context) error {
	return run(ctx, func(program keys.PublicKey, arg string) (transaction.Instruction, error) {
		return escrow.NewEchoInstruction(program, arg)
	})
}

func square(ctx *cli.Context) error {
	return run(ctx, func(program keys.PublicKey, arg string) (transaction.Instruction, error) {
		n, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return transaction.Instruction{}, fmt.Errorf("invalid number %q: %w", arg, err)
		}
		return escrow.NewSquareInstruction(program, n)
	})
}

func run(ctx *cli.Context, build func(keys.PublicKey, string) (transaction.Instruction, error)) error {
	args := ctx.Args()
	if len(args) < 2 {
		return cli.NewExitError("expected <keypair> and an argument (see --help)", 1)
	}
	signer, err := keys.NewPrivateKeyFromFile(args[0])
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	cfg, err := options.GetConfigFromContext(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	program, err := cfg.Program()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	ins, err := build(program, args[1])
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	gctx, cancel := options.GetTimeoutContext(ctx)
	defer cancel()

	c, exitErr := options.GetRPCClient(gctx, ctx, cfg)
	if exitErr != nil {
		return exitErr
	}
	defer c.Close()

	sig, err := options.SignAndSend(gctx, c, signer, ins)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintf(ctx.App.Writer, "Transaction: %s\n", sig)
	return nil
}
