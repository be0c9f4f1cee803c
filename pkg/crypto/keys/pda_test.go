package keys

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func testProgram(t *testing.T) PublicKey {
	priv, err := NewPrivateKey()
	require.NoError(t, err)
	return priv.PublicKey()
}

func TestFindProgramAddressDeterministic(t *testing.T) {
	program := testProgram(t)
	owner := testProgram(t)
	worker := testProgram(t)
	seeds := [][]byte{owner.Bytes(), worker.Bytes(), []byte("job-1")}

	addr1, bump1, err := FindProgramAddress(seeds, program)
	require.NoError(t, err)
	addr2, bump2, err := FindProgramAddress(seeds, program)
	require.NoError(t, err)

	require.Equal(t, addr1, addr2)
	require.Equal(t, bump1, bump2)
	require.False(t, addr1.IsOnCurve())
}

func TestFindProgramAddressInputSensitivity(t *testing.T) {
	program := testProgram(t)
	owner := testProgram(t)
	worker := testProgram(t)

	base, _, err := FindProgramAddress([][]byte{owner.Bytes(), worker.Bytes(), []byte("job-1")}, program)
	require.NoError(t, err)

	// One byte of the identifier changes everything.
	other, _, err := FindProgramAddress([][]byte{owner.Bytes(), worker.Bytes(), []byte("job-2")}, program)
	require.NoError(t, err)
	require.NotEqual(t, base, other)

	// So does swapping the participants.
	swapped, _, err := FindProgramAddress([][]byte{worker.Bytes(), owner.Bytes(), []byte("job-1")}, program)
	require.NoError(t, err)
	require.NotEqual(t, base, swapped)

	// And a different owning program.
	foreign, _, err := FindProgramAddress([][]byte{owner.Bytes(), worker.Bytes(), []byte("job-1")}, testProgram(t))
	require.NoError(t, err)
	require.NotEqual(t, base, foreign)
}

func TestFindProgramAddressEmptySeed(t *testing.T) {
	program := testProgram(t)
	owner := testProgram(t)
	worker := testProgram(t)

	addr, _, err := FindProgramAddress([][]byte{owner.Bytes(), worker.Bytes(), {}}, program)
	require.NoError(t, err)
	require.False(t, addr.IsZero())
	require.False(t, addr.IsOnCurve())
}

func TestCreateProgramAddressMatchesFoundBump(t *testing.T) {
	program := testProgram(t)
	seeds := [][]byte{[]byte("seed")}

	found, bump, err := FindProgramAddress(seeds, program)
	require.NoError(t, err)

	direct, err := CreateProgramAddress([][]byte{[]byte("seed"), {bump}}, program)
	require.NoError(t, err)
	require.Equal(t, found, direct)
}

func TestSeedLimits(t *testing.T) {
	program := testProgram(t)

	_, err := CreateProgramAddress([][]byte{bytes.Repeat([]byte{1}, MaxSeedLength+1)}, program)
	require.ErrorIs(t, err, ErrSeedsTooLarge)

	tooMany := make([][]byte, MaxSeeds+1)
	for i := range tooMany {
		tooMany[i] = []byte{byte(i)}
	}
	_, err = CreateProgramAddress(tooMany, program)
	require.ErrorIs(t, err, ErrSeedsTooLarge)

	_, _, err = FindProgramAddress(tooMany[:MaxSeeds], program)
	require.ErrorIs(t, err, ErrSeedsTooLarge)
}
