package transaction

import (
	"testing"

	"github.com/solpact/solpact/pkg/crypto/keys"
	sio "github.com/solpact/solpact/pkg/io"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T) keys.PublicKey {
	priv, err := keys.NewPrivateKey()
	require.NoError(t, err)
	return priv.PublicKey()
}

func testBlockhash() Hash {
	var h Hash
	for i := range h {
		h[i] = byte(i)
	}
	return h
}

func TestNewMessageOrdering(t *testing.T) {
	var (
		payer    = newKey(t)
		readonly = newKey(t)
		writable = newKey(t)
		program  = newKey(t)
	)
	ins := Instruction{
		ProgramID: program,
		Accounts: []AccountMeta{
			{PublicKey: payer, IsSigner: true, IsWritable: true},
			{PublicKey: readonly, IsSigner: false, IsWritable: false},
			{PublicKey: writable, IsSigner: false, IsWritable: true},
		},
		Data: []byte{2, 0, 0, 0, 0},
	}
	m, err := NewMessage(payer, []Instruction{ins}, testBlockhash())
	require.NoError(t, err)

	// Payer first, then writable non-signers, read-only last.
	require.Equal(t, []keys.PublicKey{payer, writable, readonly, program}, m.AccountKeys)
	require.EqualValues(t, 1, m.Header.NumRequiredSignatures)
	require.EqualValues(t, 0, m.Header.NumReadonlySignedAccounts)
	require.EqualValues(t, 2, m.Header.NumReadonlyUnsignedAccounts)

	require.True(t, m.IsSigner(0))
	require.True(t, m.IsWritable(0))
	require.False(t, m.IsSigner(1))
	require.True(t, m.IsWritable(1))
	require.False(t, m.IsWritable(2))
	require.False(t, m.IsWritable(3))

	require.Len(t, m.Instructions, 1)
	ci := m.Instructions[0]
	require.EqualValues(t, 3, ci.ProgramIDIndex)
	require.Equal(t, []byte{0, 2, 1}, ci.Accounts)
	require.Equal(t, ins.Data, ci.Data)
}

func TestNewMessageMergesDuplicates(t *testing.T) {
	var (
		payer   = newKey(t)
		program = newKey(t)
	)
	// The payer shows up again as a read-only account; flags must be OR-ed,
	// not duplicated.
	ins := Instruction{
		ProgramID: program,
		Accounts: []AccountMeta{
			{PublicKey: payer, IsSigner: false, IsWritable: false},
		},
	}
	m, err := NewMessage(payer, []Instruction{ins}, testBlockhash())
	require.NoError(t, err)
	require.Len(t, m.AccountKeys, 2)
	require.True(t, m.IsSigner(0))
	require.True(t, m.IsWritable(0))
}

func TestMessageSerializeRoundtrip(t *testing.T) {
	var (
		payer   = newKey(t)
		other   = newKey(t)
		program = newKey(t)
	)
	ins := Instruction{
		ProgramID: program,
		Accounts: []AccountMeta{
			{PublicKey: payer, IsSigner: true, IsWritable: true},
			{PublicKey: other, IsSigner: false, IsWritable: true},
		},
		Data: []byte{4, 5, 0, 0, 0, 'j', 'o', 'b', '-', '1', 1, 0, 0, 0, 0, 0, 0, 0},
	}
	m, err := NewMessage(payer, []Instruction{ins}, testBlockhash())
	require.NoError(t, err)

	raw, err := m.Serialize()
	require.NoError(t, err)

	// Header + account table + blockhash + instruction.
	expectedLen := 3 + 1 + 3*32 + 32 + 1 + (1 + 1 + 2 + 1 + len(ins.Data))
	require.Len(t, raw, expectedLen)

	decoded := new(Message)
	r := sio.NewBinReaderFromBuf(raw)
	decoded.DecodeBinary(r)
	require.NoError(t, r.Err)
	require.Equal(t, m, decoded)
}

func TestTransactionSignSerializeDeserialize(t *testing.T) {
	payer, err := keys.NewPrivateKey()
	require.NoError(t, err)
	var (
		other   = newKey(t)
		program = newKey(t)
	)
	ins := Instruction{
		ProgramID: program,
		Accounts: []AccountMeta{
			{PublicKey: payer.PublicKey(), IsSigner: true, IsWritable: true},
			{PublicKey: other, IsSigner: false, IsWritable: false},
		},
		Data: []byte{3, 0, 0, 0, 0},
	}
	m, err := NewMessage(payer.PublicKey(), []Instruction{ins}, testBlockhash())
	require.NoError(t, err)

	tx := New(m)
	require.ErrorIs(t, tx.VerifySignatures(), ErrMissingSignature)
	_, err = tx.Serialize()
	require.ErrorIs(t, err, ErrMissingSignature)

	require.NoError(t, tx.Sign(payer))
	require.NoError(t, tx.VerifySignatures())

	raw, err := tx.Serialize()
	require.NoError(t, err)

	decoded, err := Deserialize(raw)
	require.NoError(t, err)
	require.Equal(t, tx.Signatures, decoded.Signatures)
	require.Equal(t, m.Header, decoded.Message.Header)
	require.Equal(t, m.AccountKeys, decoded.Message.AccountKeys)
	require.Equal(t, m.RecentBlockhash, decoded.Message.RecentBlockhash)
	require.Equal(t, m.Instructions, decoded.Message.Instructions)
	require.NoError(t, decoded.VerifySignatures())
}

func TestSignRejectsForeignKey(t *testing.T) {
	payer, err := keys.NewPrivateKey()
	require.NoError(t, err)
	stranger, err := keys.NewPrivateKey()
	require.NoError(t, err)

	m, err := NewMessage(payer.PublicKey(), []Instruction{{ProgramID: newKey(t)}}, testBlockhash())
	require.NoError(t, err)

	tx := New(m)
	require.ErrorIs(t, tx.Sign(stranger), ErrUnknownSigner)
}

func TestHashStringRoundtrip(t *testing.T) {
	h := testBlockhash()
	decoded, err := NewHashFromString(h.String())
	require.NoError(t, err)
	require.Equal(t, h, decoded)

	_, err = NewHashFromString("1111")
	require.Error(t, err)
}
