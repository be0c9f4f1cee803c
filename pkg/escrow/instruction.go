/*
Package escrow implements the client half of the wire contract with the
deployed escrow program: operation tags, the instruction payload encoding,
the derived contract address and the positional account lists every
operation expects. All of it has to match the program bit-for-bit, the
program is the sole owner of the actual state transitions.
*/
package escrow

import (
	"errors"
	"fmt"

	"github.com/solpact/solpact/pkg/crypto/keys"
	"github.com/solpact/solpact/pkg/io"
	"github.com/solpact/solpact/pkg/transaction"
)

// Op is the leading tag byte selecting which operation the program performs.
type Op byte

// Operation tags understood by the deployed program. The numbering is the
// program's dispatch table and can never change on the client side alone.
const (
	// OpEcho logs the payload string on-chain.
	OpEcho Op = 0
	// OpSquare logs the square of the payload number.
	OpSquare Op = 1
	// OpCreate allocates the contract account and funds it with the total
	// quantity.
	OpCreate Op = 2
	// OpShow logs the stored contract fields.
	OpShow Op = 3
	// OpStep pays out the next step's share to the worker and advances the
	// step counter.
	OpStep Op = 4

	// OpDeposit is dispatched by the deployed program under the same tag as
	// OpCreate. The observed client scripts reuse the value; whether that is
	// intentional program behavior or a defect in them is unknowable from
	// this side, so the value is reproduced, not renumbered.
	OpDeposit Op = 2
)

// String implements the stringer interface.
func (o Op) String() string {
	switch o {
	case OpEcho:
		return "echo"
	case OpSquare:
		return "square"
	case OpCreate:
		return "create"
	case OpShow:
		return "show"
	case OpStep:
		return "step"
	}
	return fmt.Sprintf("op(%d)", byte(o))
}

// SystemProgramID is the address of the system program, referenced whenever
// an operation may allocate or transfer.
var SystemProgramID = keys.PublicKey{}

// Payload is the fixed-shape instruction payload every operation carries:
// a string identifier and a number, encoded the Borsh way. Operations that
// don't use a field send its zero value.
type Payload struct {
	ID     string
	Number uint64
}

// Encode returns the full instruction data: the tag byte followed by the
// Borsh-encoded payload.
func (p *Payload) Encode(op Op) ([]byte, error) {
	w := io.NewBufBinWriter()
	w.WriteB(byte(op))
	w.WriteString(p.ID)
	w.WriteU64LE(p.Number)
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

// DecodePayload parses instruction data back into its tag and payload.
func DecodePayload(data []byte) (Op, *Payload, error) {
	if len(data) == 0 {
		return 0, nil, errors.New("empty instruction data")
	}
	r := io.NewBinReaderFromBuf(data)
	op := Op(r.ReadB())
	p := &Payload{
		ID:     r.ReadString(),
		Number: r.ReadU64LE(),
	}
	if r.Err != nil {
		return 0, nil, r.Err
	}
	return op, p, nil
}

// ContractAddress derives the program-owned account address for the
// (owner, worker, id) triple. It is a pure function of its inputs and the
// owning program.
func ContractAddress(owner, worker keys.PublicKey, id string, program keys.PublicKey) (keys.PublicKey, error) {
	addr, _, err := keys.FindProgramAddress(
		[][]byte{owner.Bytes(), worker.Bytes(), []byte(id)},
		program,
	)
	if err != nil {
		return keys.PublicKey{}, fmt.Errorf("can't derive contract address: %w", err)
	}
	return addr, nil
}

// AccountSize returns the byte size the program allocates for a contract
// record with the given identifier. The program over-allocates by one byte,
// reproduced here because rent depends on it.
func AccountSize(id string) int {
	return 1 + 4 + len(id) + 2*keys.PublicKeySize + 2*8
}

// newInstruction builds an instruction against the program with the
// standard mutating-operation account list: owner signs and pays, worker is
// referenced read-only, the derived contract account is written, the system
// program backs allocations and transfers. The order is positional and
// fixed by the program.
func newInstruction(op Op, program, owner, worker, contract keys.PublicKey, id string, number uint64) (transaction.Instruction, error) {
	data, err := (&Payload{ID: id, Number: number}).Encode(op)
	if err != nil {
		return transaction.Instruction{}, err
	}
	return transaction.Instruction{
		ProgramID: program,
		Accounts: []transaction.AccountMeta{
			{PublicKey: owner, IsSigner: true, IsWritable: true},
			{PublicKey: worker, IsSigner: false, IsWritable: false},
			{PublicKey: contract, IsSigner: false, IsWritable: true},
			{PublicKey: SystemProgramID, IsSigner: false, IsWritable: false},
		},
		Data: data,
	}, nil
}

// NewCreateInstruction builds the instruction creating a contract between
// owner and worker with the given identifier, funded with quantity.
func NewCreateInstruction(program, owner, worker keys.PublicKey, id string, quantity uint64) (transaction.Instruction, error) {
	contract, err := ContractAddress(owner, worker, id, program)
	if err != nil {
		return transaction.Instruction{}, err
	}
	return newInstruction(OpCreate, program, owner, worker, contract, id, quantity)
}

// NewDepositInstruction builds the quantity-adjustment instruction. It goes
// out under OpDeposit, see the tag comment above.
func NewDepositInstruction(program, owner, worker keys.PublicKey, id string, quantity uint64) (transaction.Instruction, error) {
	contract, err := ContractAddress(owner, worker, id, program)
	if err != nil {
		return transaction.Instruction{}, err
	}
	return newInstruction(OpDeposit, program, owner, worker, contract, id, quantity)
}

// NewStepInstruction builds the instruction advancing the contract's step
// counter and paying out the corresponding share.
func NewStepInstruction(program, owner, worker keys.PublicKey, id string, score uint64) (transaction.Instruction, error) {
	contract, err := ContractAddress(owner, worker, id, program)
	if err != nil {
		return transaction.Instruction{}, err
	}
	return newInstruction(OpStep, program, owner, worker, contract, id, score)
}

// NewShowInstruction builds the instruction making the program log the
// stored contract record. No account is written.
func NewShowInstruction(program, owner, worker keys.PublicKey, id string) (transaction.Instruction, error) {
	contract, err := ContractAddress(owner, worker, id, program)
	if err != nil {
		return transaction.Instruction{}, err
	}
	data, err := (&Payload{ID: id}).Encode(OpShow)
	if err != nil {
		return transaction.Instruction{}, err
	}
	return transaction.Instruction{
		ProgramID: program,
		Accounts: []transaction.AccountMeta{
			{PublicKey: owner, IsSigner: true, IsWritable: false},
			{PublicKey: worker, IsSigner: false, IsWritable: false},
			{PublicKey: contract, IsSigner: false, IsWritable: false},
		},
		Data: data,
	}, nil
}

// NewEchoInstruction builds the instruction logging value on-chain. The
// program reads no accounts for it.
func NewEchoInstruction(program keys.PublicKey, value string) (transaction.Instruction, error) {
	data, err := (&Payload{ID: value}).Encode(OpEcho)
	if err != nil {
		return transaction.Instruction{}, err
	}
	return transaction.Instruction{ProgramID: program, Data: data}, nil
}

// NewSquareInstruction builds the instruction logging number squared.
func NewSquareInstruction(program keys.PublicKey, number uint64) (transaction.Instruction, error) {
	data, err := (&Payload{Number: number}).Encode(OpSquare)
	if err != nil {
		return transaction.Instruction{}, err
	}
	return transaction.Instruction{ProgramID: program, Data: data}, nil
}
