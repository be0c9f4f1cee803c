package escrow

import (
	"github.com/solpact/solpact/pkg/crypto/keys"
	"github.com/solpact/solpact/pkg/io"
)

// ContractRecord is the state the program stores in the derived account.
// The field order and widths are the program's Borsh layout and are decoded
// verbatim, no further validation is possible on this side.
type ContractRecord struct {
	ID            string
	Owner         keys.PublicKey
	Worker        keys.PublicKey
	TotalQuantity uint64
	ActualStep    uint64
}

// DecodeBinary implements the account data decoding.
func (c *ContractRecord) DecodeBinary(r *io.BinReader) {
	c.ID = r.ReadString()
	r.ReadBytes(c.Owner[:])
	r.ReadBytes(c.Worker[:])
	c.TotalQuantity = r.ReadU64LE()
	c.ActualStep = r.ReadU64LE()
}

// EncodeBinary implements the account data encoding. The program is the
// only writer of real records, this exists for tests and tooling.
func (c *ContractRecord) EncodeBinary(w *io.BinWriter) {
	w.WriteString(c.ID)
	w.WriteBytes(c.Owner[:])
	w.WriteBytes(c.Worker[:])
	w.WriteU64LE(c.TotalQuantity)
	w.WriteU64LE(c.ActualStep)
}

// DecodeContractRecord parses raw account data into a ContractRecord.
// Trailing bytes are tolerated, the program allocates one byte more than
// the record occupies.
func DecodeContractRecord(data []byte) (*ContractRecord, error) {
	r := io.NewBinReaderFromBuf(data)
	c := new(ContractRecord)
	c.DecodeBinary(r)
	if r.Err != nil {
		return nil, r.Err
	}
	return c, nil
}
