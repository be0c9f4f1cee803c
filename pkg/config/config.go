/*
Package config holds the explicit client configuration: network endpoint,
target program address and commitment level. There are no module-level
singletons, every operation receives a Config built from defaults, an
optional YAML file and command-line overrides.
*/
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/solpact/solpact/pkg/crypto/keys"
	"gopkg.in/yaml.v3"
)

// DevnetEndpoint is the public development-network RPC endpoint used when
// no other endpoint is configured.
const DevnetEndpoint = "https://api.devnet.solana.com"

// DefaultCommitment is the confirmation level used when none is configured.
const DefaultCommitment = "confirmed"

// ErrNoProgramID is returned when an operation needs the escrow program
// address and neither the config file nor the flags provide one.
var ErrNoProgramID = errors.New("program address is not configured, set program_id in the config file or use --program-id")

// Config is the client configuration.
type Config struct {
	// Endpoint is the RPC node to talk to.
	Endpoint string `yaml:"endpoint"`
	// ProgramID is the base58 address of the deployed escrow program.
	ProgramID string `yaml:"program_id"`
	// Commitment is the confirmation level used for queries, preflight and
	// transaction awaiting: "processed", "confirmed" or "finalized".
	Commitment string `yaml:"commitment"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Endpoint:   DevnetEndpoint,
		Commitment: DefaultCommitment,
	}
}

// LoadFile loads a YAML configuration from the given path on top of the
// defaults: fields absent from the file keep their default values.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("unable to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DevnetEndpoint
	}
	if cfg.Commitment == "" {
		cfg.Commitment = DefaultCommitment
	}
	return cfg, nil
}

// Program returns the parsed escrow program address.
func (c Config) Program() (keys.PublicKey, error) {
	if c.ProgramID == "" {
		return keys.PublicKey{}, ErrNoProgramID
	}
	u, err := keys.NewPublicKeyFromString(c.ProgramID)
	if err != nil {
		return keys.PublicKey{}, fmt.Errorf("invalid program address: %w", err)
	}
	return u, nil
}
