/*
Package wallet implements keypair management commands: generating a keypair
file, inspecting it and funding it from the test-network faucet.
*/
package wallet

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/solpact/solpact/cli/options"
	"github.com/solpact/solpact/pkg/crypto/keys"
	"github.com/urfave/cli"
)

var errNoPath = errors.New("keypair file path is mandatory and should be passed using (--path, -p) flags")

var keypairPathFlag = cli.StringFlag{
	Name:  "path, p",
	Usage: "Target location of the keypair file.",
}

// NewCommands returns the 'wallet' command.
func NewCommands() []cli.Command {
	return []cli.Command{{
		Name:  "wallet",
		Usage: "create and manage keypair files",
		Subcommands: []cli.Command{
			{
				Name:   "init",
				Usage:  "generate a new keypair file",
				Action: initKeypair,
				Flags:  []cli.Flag{keypairPathFlag},
			},
			{
				Name:   "dump",
				Usage:  "print the address of an existing keypair file",
				Action: dumpKeypair,
				Flags:  []cli.Flag{keypairPathFlag},
			},
			{
				Name:   "balance",
				Usage:  "print the balance of the keypair's account",
				Action: balance,
				Flags:  append([]cli.Flag{keypairPathFlag, options.Config, options.Debug}, options.RPC...),
			},
			{
				Name:      "airdrop",
				Usage:     "request test-network funds for the keypair's account",
				UsageText: "solpact wallet airdrop -p <keypair> [options] <lamports>",
				Action:    airdrop,
				Flags:     append([]cli.Flag{keypairPathFlag, options.Config, options.Debug}, options.RPC...),
			},
		},
	}}
}

func initKeypair(ctx *cli.Context) error {
	path := ctx.String("path")
	if len(path) == 0 {
		return cli.NewExitError(errNoPath, 1)
	}
	priv, err := keys.NewPrivateKey()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if err := priv.Save(path); err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintf(ctx.App.Writer, "Address: %s\n", priv.Address())
	fmt.Fprintf(ctx.App.Writer, "keypair successfully created, file location is %s\n", path)
	return nil
}

func dumpKeypair(ctx *cli.Context) error {
	priv, err := loadKeypair(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintf(ctx.App.Writer, "Address: %s\n", priv.Address())
	return nil
}

func balance(ctx *cli.Context) error {
	priv, err := loadKeypair(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	cfg, err := options.GetConfigFromContext(ctx)
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

	bal, err := c.GetBalance(priv.PublicKey())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintf(ctx.App.Writer, "Address: %s\n", priv.Address())
	fmt.Fprintf(ctx.App.Writer, "Balance: %d lamports\n", bal)
	return nil
}

func airdrop(ctx *cli.Context) error {
	priv, err := loadKeypair(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	args := ctx.Args()
	if len(args) == 0 {
		return cli.NewExitError("lamport amount is missing", 1)
	}
	lamports, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid lamport amount %q: %w", args[0], err), 1)
	}
	cfg, err := options.GetConfigFromContext(ctx)
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

	sig, err := c.RequestAirdrop(priv.PublicKey(), lamports)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if err := c.WaitForConfirmation(gctx, sig); err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintf(ctx.App.Writer, "Transaction: %s\n", sig)
	return nil
}

func loadKeypair(ctx *cli.Context) (*keys.PrivateKey, error) {
	path := ctx.String("path")
	if len(path) == 0 {
		return nil, errNoPath
	}
	return keys.NewPrivateKeyFromFile(path)
}
