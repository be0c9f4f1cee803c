package transaction

import (
	"errors"
	"fmt"

	"github.com/solpact/solpact/pkg/crypto/keys"
	"github.com/solpact/solpact/pkg/io"
)

// maxMessageAccounts limits the account table of a single message. A legacy
// message indexes accounts with one byte.
const maxMessageAccounts = 256

// MessageHeader describes the layout of the account table: the first
// NumRequiredSignatures keys must sign, of which the last
// NumReadonlySignedAccounts are read-only; the last
// NumReadonlyUnsignedAccounts of the remaining keys are read-only too.
type MessageHeader struct {
	NumRequiredSignatures       byte
	NumReadonlySignedAccounts   byte
	NumReadonlyUnsignedAccounts byte
}

// CompiledInstruction is an instruction with its program and accounts
// replaced by indexes into the message account table.
type CompiledInstruction struct {
	ProgramIDIndex byte
	Accounts       []byte
	Data           []byte
}

// Message is the signed part of a transaction: header, de-duplicated account
// table, the recent blockhash anchoring the transaction in time and the
// compiled instructions.
type Message struct {
	Header          MessageHeader
	AccountKeys     []keys.PublicKey
	RecentBlockhash Hash
	Instructions    []CompiledInstruction
}

type compiledAccount struct {
	key        keys.PublicKey
	isSigner   bool
	isWritable bool
}

// NewMessage compiles instructions into a message. The fee payer is always
// the first account; duplicates across instructions are merged with their
// signer/writable flags combined. Account table order is writable signers,
// read-only signers, writable non-signers, read-only non-signers, preserving
// first-reference order within each class.
func NewMessage(payer keys.PublicKey, instructions []Instruction, recent Hash) (*Message, error) {
	var (
		accounts = []compiledAccount{{key: payer, isSigner: true, isWritable: true}}
		index    = map[keys.PublicKey]int{payer: 0}
	)
	merge := func(key keys.PublicKey, isSigner, isWritable bool) {
		if i, ok := index[key]; ok {
			accounts[i].isSigner = accounts[i].isSigner || isSigner
			accounts[i].isWritable = accounts[i].isWritable || isWritable
			return
		}
		index[key] = len(accounts)
		accounts = append(accounts, compiledAccount{key: key, isSigner: isSigner, isWritable: isWritable})
	}
	for _, ins := range instructions {
		for _, meta := range ins.Accounts {
			merge(meta.PublicKey, meta.IsSigner, meta.IsWritable)
		}
		merge(ins.ProgramID, false, false)
	}
	if len(accounts) > maxMessageAccounts {
		return nil, fmt.Errorf("too many accounts referenced (%d)", len(accounts))
	}

	var ordered []compiledAccount
	for _, class := range []func(compiledAccount) bool{
		func(a compiledAccount) bool { return a.isSigner && a.isWritable },
		func(a compiledAccount) bool { return a.isSigner && !a.isWritable },
		func(a compiledAccount) bool { return !a.isSigner && a.isWritable },
		func(a compiledAccount) bool { return !a.isSigner && !a.isWritable },
	} {
		for _, a := range accounts {
			if class(a) {
				ordered = append(ordered, a)
			}
		}
	}

	m := &Message{
		AccountKeys:     make([]keys.PublicKey, len(ordered)),
		RecentBlockhash: recent,
	}
	position := make(map[keys.PublicKey]byte, len(ordered))
	for i, a := range ordered {
		m.AccountKeys[i] = a.key
		position[a.key] = byte(i)
		if a.isSigner {
			m.Header.NumRequiredSignatures++
			if !a.isWritable {
				m.Header.NumReadonlySignedAccounts++
			}
		} else if !a.isWritable {
			m.Header.NumReadonlyUnsignedAccounts++
		}
	}

	m.Instructions = make([]CompiledInstruction, len(instructions))
	for i, ins := range instructions {
		ci := CompiledInstruction{
			ProgramIDIndex: position[ins.ProgramID],
			Accounts:       make([]byte, len(ins.Accounts)),
			Data:           ins.Data,
		}
		for j, meta := range ins.Accounts {
			ci.Accounts[j] = position[meta.PublicKey]
		}
		m.Instructions[i] = ci
	}
	return m, nil
}

// IsSigner reports whether the account at the given table index must sign.
func (m *Message) IsSigner(i int) bool {
	return i < int(m.Header.NumRequiredSignatures)
}

// IsWritable reports whether the account at the given table index may be
// written to.
func (m *Message) IsWritable(i int) bool {
	h := m.Header
	if i < int(h.NumRequiredSignatures) {
		return i < int(h.NumRequiredSignatures-h.NumReadonlySignedAccounts)
	}
	return i < len(m.AccountKeys)-int(h.NumReadonlyUnsignedAccounts)
}

// EncodeBinary implements the wire encoding of the message.
func (m *Message) EncodeBinary(w *io.BinWriter) {
	w.WriteB(m.Header.NumRequiredSignatures)
	w.WriteB(m.Header.NumReadonlySignedAccounts)
	w.WriteB(m.Header.NumReadonlyUnsignedAccounts)
	w.WriteCompactU16(uint16(len(m.AccountKeys)))
	for i := range m.AccountKeys {
		w.WriteBytes(m.AccountKeys[i].Bytes())
	}
	w.WriteBytes(m.RecentBlockhash[:])
	w.WriteCompactU16(uint16(len(m.Instructions)))
	for i := range m.Instructions {
		ci := &m.Instructions[i]
		w.WriteB(ci.ProgramIDIndex)
		w.WriteCompactU16(uint16(len(ci.Accounts)))
		w.WriteBytes(ci.Accounts)
		w.WriteCompactU16(uint16(len(ci.Data)))
		w.WriteBytes(ci.Data)
	}
}

// DecodeBinary implements the wire decoding of the message.
func (m *Message) DecodeBinary(r *io.BinReader) {
	m.Header.NumRequiredSignatures = r.ReadB()
	m.Header.NumReadonlySignedAccounts = r.ReadB()
	m.Header.NumReadonlyUnsignedAccounts = r.ReadB()

	n := r.ReadCompactU16()
	if r.Err != nil {
		return
	}
	if n > maxMessageAccounts {
		r.Err = fmt.Errorf("too many accounts in message (%d)", n)
		return
	}
	m.AccountKeys = make([]keys.PublicKey, n)
	for i := range m.AccountKeys {
		r.ReadBytes(m.AccountKeys[i][:])
	}
	r.ReadBytes(m.RecentBlockhash[:])

	in := r.ReadCompactU16()
	if r.Err != nil {
		return
	}
	m.Instructions = make([]CompiledInstruction, in)
	for i := range m.Instructions {
		ci := &m.Instructions[i]
		ci.ProgramIDIndex = r.ReadB()
		na := r.ReadCompactU16()
		if r.Err != nil {
			return
		}
		if na > maxMessageAccounts {
			r.Err = fmt.Errorf("too many accounts in instruction (%d)", na)
			return
		}
		ci.Accounts = make([]byte, na)
		r.ReadBytes(ci.Accounts)
		nd := r.ReadCompactU16()
		if r.Err != nil {
			return
		}
		ci.Data = make([]byte, nd)
		r.ReadBytes(ci.Data)
	}
	if r.Err == nil && int(m.Header.NumRequiredSignatures) > len(m.AccountKeys) {
		r.Err = errors.New("header requires more signatures than there are accounts")
	}
}

// Serialize returns the wire form of the message, the exact bytes that get
// signed.
func (m *Message) Serialize() ([]byte, error) {
	w := io.NewBufBinWriter()
	m.EncodeBinary(w.BinWriter)
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}
