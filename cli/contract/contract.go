/*
Package contract implements CLI commands for the escrow program operations:
creating a contract, topping up its quantity, advancing the step counter
and reading the stored record back.
*/
package contract

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/solpact/solpact/cli/options"
	"github.com/solpact/solpact/pkg/crypto/keys"
	"github.com/solpact/solpact/pkg/escrow"
	"github.com/solpact/solpact/pkg/transaction"
	"github.com/urfave/cli"
)

var errMissingArgs = errors.New("missing positional arguments")

// NewCommands returns the 'contract' command.
func NewCommands() []cli.Command {
	return []cli.Command{{
		Name:  "contract",
		Usage: "operate on escrow contracts",
		Subcommands: []cli.Command{
			{
				Name:      "create",
				Usage:     "create and fund an escrow contract",
				UsageText: "solpact contract create [options] <owner-keypair> <worker> <id> <quantity>",
				Action:    createContract,
				Flags:     options.Network,
			},
			{
				Name:      "deposit",
				Usage:     "adjust the contract quantity",
				UsageText: "solpact contract deposit [options] <owner-keypair> <worker> <id> <quantity>",
				Action:    depositContract,
				Flags:     options.Network,
			},
			{
				Name:      "step",
				Usage:     "advance the contract step, paying out the worker's share",
				UsageText: "solpact contract step [options] <owner-keypair> <worker> <id> <score>",
				Action:    stepContract,
				Flags:     options.Network,
			},
			{
				Name:      "show",
				Usage:     "fetch and display the stored contract record",
				UsageText: "solpact contract show [options] <owner-keypair> <worker> <id>",
				Action:    showContract,
				Flags:     options.Network,
			},
		},
	}}
}

type contractArgs struct {
	owner  *keys.PrivateKey
	worker keys.PublicKey
	id     string
	amount uint64
}

// parseWorker accepts either a base58 address or a path to a keypair file.
// The worker never signs anything here, its address is all that's needed.
func parseWorker(arg string) (keys.PublicKey, error) {
	if u, err := keys.NewPublicKeyFromString(arg); err == nil {
		return u, nil
	}
	priv, err := keys.NewPrivateKeyFromFile(arg)
	if err != nil {
		return keys.PublicKey{}, fmt.Errorf("worker %q is neither a base58 address nor a keypair file: %w", arg, err)
	}
	return priv.PublicKey(), nil
}

// getContractArgs parses the common positional arguments. The amount, when
// expected, has to be a valid base-10 unsigned integer: nothing gets
// encoded or submitted on a malformed number.
func getContractArgs(ctx *cli.Context, withAmount bool) (*contractArgs, error) {
	args := ctx.Args()
	need := 3
	if withAmount {
		need = 4
	}
	if len(args) < need {
		return nil, fmt.Errorf("%w: expected %d, got %d (see --help)", errMissingArgs, need, len(args))
	}

	owner, err := keys.NewPrivateKeyFromFile(args[0])
	if err != nil {
		return nil, err
	}
	worker, err := parseWorker(args[1])
	if err != nil {
		return nil, err
	}
	res := &contractArgs{
		owner:  owner,
		worker: worker,
		id:     args[2],
	}
	if withAmount {
		res.amount, err = strconv.ParseUint(args[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity %q: %w", args[3], err)
		}
	}
	return res, nil
}

// instructionBuilder produces one escrow instruction for parsed arguments.
type instructionBuilder func(program, owner, worker keys.PublicKey, id string, amount uint64) (transaction.Instruction, error)

func createContract(ctx *cli.Context) error {
	return submitOp(ctx, escrow.NewCreateInstruction)
}

func depositContract(ctx *cli.Context) error {
	return submitOp(ctx, escrow.NewDepositInstruction)
}

func stepContract(ctx *cli.Context) error {
	return submitOp(ctx, escrow.NewStepInstruction)
}

// submitOp runs the submission flow shared by all mutating operations:
// parse arguments, derive the contract address, build one instruction,
// sign, send, await confirmation, print the result.
func submitOp(ctx *cli.Context, build instructionBuilder) error {
	args, err := getContractArgs(ctx, true)
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

	ins, err := build(program, args.owner.PublicKey(), args.worker, args.id, args.amount)
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

	sig, err := options.SignAndSend(gctx, c, args.owner, ins)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	contract := ins.Accounts[2].PublicKey
	fmt.Fprintf(ctx.App.Writer, "Contract: %s\n", contract)
	fmt.Fprintf(ctx.App.Writer, "Transaction: %s\n", sig)
	return nil
}

func showContract(ctx *cli.Context) error {
	args, err := getContractArgs(ctx, false)
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

	ins, err := escrow.NewShowInstruction(program, args.owner.PublicKey(), args.worker, args.id)
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

	sig, err := options.SignAndSend(gctx, c, args.owner, ins)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	contract := ins.Accounts[2].PublicKey
	info, err := c.GetAccountInfo(contract)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	data, err := info.DecodeData()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	rec, err := escrow.DecodeContractRecord(data)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("can't decode contract record: %w", err), 1)
	}

	dumpContractRecord(ctx, contract, rec, info.Lamports, sig)
	return nil
}

func dumpContractRecord(ctx *cli.Context, contract keys.PublicKey, rec *escrow.ContractRecord, lamports uint64, sig string) {
	buf := bytes.NewBuffer(nil)

	// Ignore the errors below because `Write` to buffer doesn't return error.
	tw := tabwriter.NewWriter(buf, 0, 4, 4, '\t', 0)
	_, _ = tw.Write([]byte("Contract:\t" + contract.String() + "\n"))
	_, _ = tw.Write([]byte("Id:\t" + rec.ID + "\n"))
	_, _ = tw.Write([]byte("Owner:\t" + rec.Owner.String() + "\n"))
	_, _ = tw.Write([]byte("Worker:\t" + rec.Worker.String() + "\n"))
	_, _ = tw.Write([]byte("TotalQuantity:\t" + strconv.FormatUint(rec.TotalQuantity, 10) + "\n"))
	_, _ = tw.Write([]byte("ActualStep:\t" + strconv.FormatUint(rec.ActualStep, 10) + "\n"))
	_, _ = tw.Write([]byte("Balance:\t" + strconv.FormatUint(lamports, 10) + "\n"))
	_, _ = tw.Write([]byte("Transaction:\t" + sig + "\n"))
	_ = tw.Flush()
	fmt.Fprint(ctx.App.Writer, buf.String())
}
