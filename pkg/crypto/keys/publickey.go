package keys

import (
	"encoding/json"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// PublicKeySize is the byte length of an ed25519 public key and of every
// on-chain address derived from one.
const PublicKeySize = 32

// PublicKey is a 32-byte account address. Regular addresses are points on
// the ed25519 curve, program-derived ones are deliberately off-curve.
type PublicKey [PublicKeySize]byte

// NewPublicKeyFromString returns a PublicKey decoded from its base58 string
// form.
func NewPublicKeyFromString(s string) (PublicKey, error) {
	var u PublicKey
	b, err := base58.Decode(s)
	if err != nil {
		return u, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return NewPublicKeyFromBytes(b)
}

// NewPublicKeyFromBytes returns a PublicKey from the given byte slice.
func NewPublicKeyFromBytes(b []byte) (PublicKey, error) {
	var u PublicKey
	if len(b) != PublicKeySize {
		return u, fmt.Errorf("expected %d bytes, got %d", PublicKeySize, len(b))
	}
	copy(u[:], b)
	return u, nil
}

// Bytes returns a byte slice representation of u.
func (u PublicKey) Bytes() []byte {
	return u[:]
}

// Equals returns true if both keys are the same.
func (u PublicKey) Equals(other PublicKey) bool {
	return u == other
}

// IsZero returns true for the all-zero key.
func (u PublicKey) IsZero() bool {
	return u == PublicKey{}
}

// IsOnCurve reports whether the key is a valid point on the ed25519 curve.
// Keypair-backed addresses are on the curve, program-derived addresses must
// not be.
func (u PublicKey) IsOnCurve() bool {
	_, err := new(edwards25519.Point).SetBytes(u[:])
	return err == nil
}

// String implements the stringer interface, returning the base58 form.
func (u PublicKey) String() string {
	return base58.Encode(u[:])
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (u *PublicKey) UnmarshalJSON(data []byte) error {
	var js string
	if err := json.Unmarshal(data, &js); err != nil {
		return err
	}
	key, err := NewPublicKeyFromString(js)
	if err != nil {
		return err
	}
	*u = key
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (u PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}
