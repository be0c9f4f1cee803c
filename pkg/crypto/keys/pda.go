package keys

import (
	"crypto/sha256"
	"errors"
	"fmt"
)

const (
	// MaxSeeds is the maximum number of seeds a derived address can use,
	// not counting the bump.
	MaxSeeds = 16
	// MaxSeedLength is the maximum byte length of a single seed.
	MaxSeedLength = 32
)

// pdaMarker is the domain separator appended when hashing derivation seeds.
const pdaMarker = "ProgramDerivedAddress"

// ErrSeedsTooLarge is returned when derivation seeds exceed the runtime limits.
var ErrSeedsTooLarge = errors.New("derivation seeds exceed limits")

// errOnCurve is returned by CreateProgramAddress when the candidate address
// happens to be a valid curve point and so can't be program-owned.
var errOnCurve = errors.New("derived address is on the curve")

// CreateProgramAddress deterministically derives an address from the given
// seeds and owning program. The result is the SHA-256 of the concatenated
// seeds, the program address and a fixed marker; it is only valid when it
// does not land on the ed25519 curve, since program-derived addresses must
// have no corresponding private key.
func CreateProgramAddress(seeds [][]byte, program PublicKey) (PublicKey, error) {
	if len(seeds) > MaxSeeds {
		return PublicKey{}, fmt.Errorf("%w: %d seeds", ErrSeedsTooLarge, len(seeds))
	}
	h := sha256.New()
	for i, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return PublicKey{}, fmt.Errorf("%w: seed %d is %d bytes", ErrSeedsTooLarge, i, len(seed))
		}
		h.Write(seed)
	}
	h.Write(program[:])
	h.Write([]byte(pdaMarker))

	var u PublicKey
	copy(u[:], h.Sum(nil))
	if u.IsOnCurve() {
		return PublicKey{}, errOnCurve
	}
	return u, nil
}

// FindProgramAddress finds a valid derived address and the bump seed that
// produced it by trying bumps from 255 downwards, the same search the
// on-chain runtime performs. For fixed inputs the result is deterministic.
func FindProgramAddress(seeds [][]byte, program PublicKey) (PublicKey, byte, error) {
	if len(seeds)+1 > MaxSeeds {
		return PublicKey{}, 0, fmt.Errorf("%w: %d seeds", ErrSeedsTooLarge, len(seeds))
	}
	bumped := make([][]byte, len(seeds)+1)
	copy(bumped, seeds)
	for bump := 255; bump >= 0; bump-- {
		bumped[len(seeds)] = []byte{byte(bump)}
		u, err := CreateProgramAddress(bumped, program)
		if err == nil {
			return u, byte(bump), nil
		}
		if !errors.Is(err, errOnCurve) {
			return PublicKey{}, 0, err
		}
	}
	return PublicKey{}, 0, errors.New("unable to find a viable bump seed")
}
