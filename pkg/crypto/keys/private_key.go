package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"
)

// PrivateKey represents an ed25519 keypair and provides a high level API
// around crypto/ed25519.
type PrivateKey struct {
	priv ed25519.PrivateKey
}

// NewPrivateKey creates a new random keypair.
func NewPrivateKey() (*PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{priv: priv}, nil
}

// NewPrivateKeyFromBytes returns a PrivateKey from the given 64-byte slice
// (32 bytes of seed followed by the 32-byte public key).
func NewPrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf(
			"invalid byte length: expected %d bytes got %d", ed25519.PrivateKeySize, len(b),
		)
	}
	priv := ed25519.NewKeyFromSeed(b[:ed25519.SeedSize])
	for i, c := range priv[ed25519.SeedSize:] {
		if b[ed25519.SeedSize+i] != c {
			return nil, fmt.Errorf("public key part doesn't match the seed")
		}
	}
	return &PrivateKey{priv: priv}, nil
}

// NewPrivateKeyFromFile loads a keypair from a JSON file containing an array
// of 64 byte values, the format keypair files are commonly stored in.
func NewPrivateKeyFromFile(path string) (*PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read keypair file: %w", err)
	}
	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid keypair file %s: %w", path, err)
	}
	b := make([]byte, len(raw))
	for i, v := range raw {
		if v < 0 || v > 0xff {
			return nil, fmt.Errorf("invalid keypair file %s: byte %d out of range", path, i)
		}
		b[i] = byte(v)
	}
	return NewPrivateKeyFromBytes(b)
}

// Save writes the keypair to a JSON file in the same array-of-bytes format
// NewPrivateKeyFromFile reads.
func (p *PrivateKey) Save(path string) error {
	raw := make([]int, len(p.priv))
	for i, b := range p.priv {
		raw[i] = int(b)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// PublicKey returns the public key part of the keypair.
func (p *PrivateKey) PublicKey() PublicKey {
	var u PublicKey
	copy(u[:], p.priv[ed25519.SeedSize:])
	return u
}

// Address returns the base58 account address coupled with the private key.
func (p *PrivateKey) Address() string {
	return p.PublicKey().String()
}

// Sign signs arbitrary length data using the private key.
func (p *PrivateKey) Sign(data []byte) []byte {
	return ed25519.Sign(p.priv, data)
}

// Bytes returns the underlying 64 bytes of the keypair.
func (p *PrivateKey) Bytes() []byte {
	b := make([]byte, len(p.priv))
	copy(b, p.priv)
	return b
}
