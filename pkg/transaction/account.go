package transaction

import "github.com/solpact/solpact/pkg/crypto/keys"

// AccountMeta describes one account referenced by an instruction along with
// the two flags the runtime needs: whether the account must sign the
// transaction and whether it may be written to. The on-chain program
// receives accounts in exactly the order they are listed.
type AccountMeta struct {
	PublicKey  keys.PublicKey
	IsSigner   bool
	IsWritable bool
}

// Instruction is a single program invocation: the program to call, the
// positional account list it expects and an opaque binary payload it
// interprets on its own.
type Instruction struct {
	ProgramID keys.PublicKey
	Accounts  []AccountMeta
	Data      []byte
}
