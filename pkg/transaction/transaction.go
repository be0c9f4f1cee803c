/*
Package transaction implements the client side of the legacy transaction
wire format: account metas, message compilation, bit-exact binary
serialization and ed25519 signing.
*/
package transaction

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/solpact/solpact/pkg/crypto/keys"
	"github.com/solpact/solpact/pkg/io"
)

// HashSize is the byte length of a blockhash.
const HashSize = 32

// SignatureSize is the byte length of an ed25519 signature.
const SignatureSize = 64

// Hash is a 32-byte blockhash used to anchor a transaction to a recent
// point in the chain.
type Hash [HashSize]byte

// NewHashFromString returns a Hash decoded from its base58 string form.
func NewHashFromString(s string) (Hash, error) {
	var h Hash
	b, err := base58.Decode(s)
	if err != nil {
		return h, fmt.Errorf("invalid blockhash %q: %w", s, err)
	}
	if len(b) != HashSize {
		return h, fmt.Errorf("invalid blockhash %q: expected %d bytes, got %d", s, HashSize, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// String implements the stringer interface, returning the base58 form.
func (h Hash) String() string {
	return base58.Encode(h[:])
}

// Signature is a 64-byte ed25519 signature.
type Signature [SignatureSize]byte

// String implements the stringer interface, returning the base58 form,
// which doubles as the transaction identifier.
func (s Signature) String() string {
	return base58.Encode(s[:])
}

// ErrUnknownSigner is returned by Sign when a supplied key doesn't match any
// account the message requires a signature from.
var ErrUnknownSigner = errors.New("key doesn't match any required signer")

// ErrMissingSignature is returned when a transaction is serialized with some
// required signature still unset.
var ErrMissingSignature = errors.New("transaction misses a required signature")

// Transaction is a signed message: one signature per required signer, in
// account table order, followed by the message itself.
type Transaction struct {
	Signatures []Signature
	Message    *Message
}

// New wraps a compiled message into a transaction with room for all
// required signatures.
func New(m *Message) *Transaction {
	return &Transaction{
		Signatures: make([]Signature, m.Header.NumRequiredSignatures),
		Message:    m,
	}
}

// Sign signs the message with every given key and stores each signature at
// the position of the matching account. Keys that don't correspond to a
// required signer are rejected.
func (t *Transaction) Sign(privs ...*keys.PrivateKey) error {
	msg, err := t.Message.Serialize()
	if err != nil {
		return err
	}
	for _, priv := range privs {
		pos := -1
		pub := priv.PublicKey()
		for i := 0; i < int(t.Message.Header.NumRequiredSignatures); i++ {
			if t.Message.AccountKeys[i].Equals(pub) {
				pos = i
				break
			}
		}
		if pos == -1 {
			return fmt.Errorf("%w: %s", ErrUnknownSigner, pub)
		}
		copy(t.Signatures[pos][:], priv.Sign(msg))
	}
	return nil
}

// VerifySignatures checks every required signature against the serialized
// message.
func (t *Transaction) VerifySignatures() error {
	msg, err := t.Message.Serialize()
	if err != nil {
		return err
	}
	if len(t.Signatures) != int(t.Message.Header.NumRequiredSignatures) {
		return ErrMissingSignature
	}
	for i, sig := range t.Signatures {
		if sig == (Signature{}) {
			return ErrMissingSignature
		}
		pub := ed25519.PublicKey(t.Message.AccountKeys[i].Bytes())
		if !ed25519.Verify(pub, msg, sig[:]) {
			return fmt.Errorf("invalid signature from %s", t.Message.AccountKeys[i])
		}
	}
	return nil
}

// EncodeBinary implements the wire encoding of the transaction.
func (t *Transaction) EncodeBinary(w *io.BinWriter) {
	w.WriteCompactU16(uint16(len(t.Signatures)))
	for i := range t.Signatures {
		w.WriteBytes(t.Signatures[i][:])
	}
	t.Message.EncodeBinary(w)
}

// DecodeBinary implements the wire decoding of the transaction.
func (t *Transaction) DecodeBinary(r *io.BinReader) {
	n := r.ReadCompactU16()
	if r.Err != nil {
		return
	}
	if n > maxMessageAccounts {
		r.Err = fmt.Errorf("too many signatures (%d)", n)
		return
	}
	t.Signatures = make([]Signature, n)
	for i := range t.Signatures {
		r.ReadBytes(t.Signatures[i][:])
	}
	t.Message = new(Message)
	t.Message.DecodeBinary(r)
}

// Serialize returns the wire form of the signed transaction.
func (t *Transaction) Serialize() ([]byte, error) {
	for _, sig := range t.Signatures {
		if sig == (Signature{}) {
			return nil, ErrMissingSignature
		}
	}
	w := io.NewBufBinWriter()
	t.EncodeBinary(w.BinWriter)
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

// Base64 returns the serialized transaction in the base64 form the
// sendTransaction RPC call expects.
func (t *Transaction) Base64() (string, error) {
	raw, err := t.Serialize()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Deserialize decodes a transaction from its wire form.
func Deserialize(data []byte) (*Transaction, error) {
	r := io.NewBinReaderFromBuf(data)
	t := new(Transaction)
	t.DecodeBinary(r)
	if r.Err != nil {
		return nil, r.Err
	}
	return t, nil
}
