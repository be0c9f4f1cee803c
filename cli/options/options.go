/*
Package options contains a set of common CLI options and helper functions to use them.
*/
package options

import (
	"context"
	"time"

	"github.com/solpact/solpact/pkg/config"
	"github.com/solpact/solpact/pkg/crypto/keys"
	"github.com/solpact/solpact/pkg/rpcclient"
	"github.com/solpact/solpact/pkg/transaction"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultTimeout is the default timeout used for operations that submit a
// transaction and await its confirmation.
const DefaultTimeout = 60 * time.Second

// RPCEndpointFlag is a long flag name for an RPC endpoint. It can be used to
// check for flag presence in the context.
const RPCEndpointFlag = "rpc-endpoint"

// ProgramIDFlag is a long flag name for the escrow program address.
const ProgramIDFlag = "program-id"

// RPC is a set of flags used for RPC connections (endpoint and timeout).
var RPC = []cli.Flag{
	cli.StringFlag{
		Name:  RPCEndpointFlag + ", r",
		Usage: "RPC node address (overrides configuration)",
	},
	cli.DurationFlag{
		Name:  "timeout, s",
		Value: DefaultTimeout,
		Usage: "Timeout for the operation, confirmation awaiting included",
	},
}

// Config is a flag for commands that read the client configuration file.
var Config = cli.StringFlag{
	Name:  "config-file, c",
	Usage: "path to the YAML configuration file",
}

// ProgramID is a flag overriding the configured escrow program address.
var ProgramID = cli.StringFlag{
	Name:  ProgramIDFlag,
	Usage: "base58 address of the deployed escrow program (overrides configuration)",
}

// Debug is a flag enabling debug logging.
var Debug = cli.BoolFlag{
	Name:  "debug, d",
	Usage: "enable debug logging",
}

// Network is the standard flag set for commands that talk to a node about
// the escrow program.
var Network = append([]cli.Flag{Config, ProgramID, Debug}, RPC...)

// GetTimeoutContext returns a context.Context with the default or a user-set timeout.
func GetTimeoutContext(ctx *cli.Context) (context.Context, func()) {
	dur := ctx.Duration("timeout")
	if dur == 0 {
		dur = DefaultTimeout
	}
	return context.WithTimeout(context.Background(), dur)
}

// GetConfigFromContext builds the client configuration for the given
// Context: defaults, then the config file if one is set, then flag
// overrides.
func GetConfigFromContext(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.String("config-file"); path != "" {
		var err error
		cfg, err = config.LoadFile(path)
		if err != nil {
			return cfg, err
		}
	}
	if endpoint := ctx.String(RPCEndpointFlag); endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if program := ctx.String(ProgramIDFlag); program != "" {
		cfg.ProgramID = program
	}
	return cfg, nil
}

// GetLogger returns a console logger honoring the debug flag.
func GetLogger(ctx *cli.Context) *zap.Logger {
	level := zapcore.InfoLevel
	if ctx.Bool("debug") {
		level = zapcore.DebugLevel
	}
	cc := zap.NewProductionConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	cc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cc.Encoding = "console"
	cc.Level = zap.NewAtomicLevelAt(level)
	cc.Sampling = nil

	log, err := cc.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// GetRPCClient returns an RPC client instance for the given Context and
// configuration.
func GetRPCClient(gctx context.Context, ctx *cli.Context, cfg config.Config) (*rpcclient.Client, cli.ExitCoder) {
	c, err := rpcclient.New(gctx, cfg.Endpoint, rpcclient.Options{
		Commitment: cfg.Commitment,
		Logger:     GetLogger(ctx),
	})
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}
	return c, nil
}

// SignAndSend wraps one instruction into a transaction paid and signed by
// signer, submits it and blocks until the network confirms it or gctx
// expires. It returns the transaction signature.
func SignAndSend(gctx context.Context, c *rpcclient.Client, signer *keys.PrivateKey, ins transaction.Instruction) (string, error) {
	blockhash, _, err := c.GetLatestBlockhash()
	if err != nil {
		return "", err
	}
	m, err := transaction.NewMessage(signer.PublicKey(), []transaction.Instruction{ins}, blockhash)
	if err != nil {
		return "", err
	}
	tx := transaction.New(m)
	if err := tx.Sign(signer); err != nil {
		return "", err
	}
	sig, err := c.SendTransaction(tx)
	if err != nil {
		return "", err
	}
	return sig, c.WaitForConfirmation(gctx, sig)
}
