/*
Package result contains the method-specific response types the RPC client
unmarshals node answers into. Stateful query results come wrapped in a
context envelope carrying the slot they were observed at.
*/
package result

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Context is the slot context most query responses are wrapped in.
type Context struct {
	Slot uint64 `json:"slot"`
}

// LatestBlockhash is the value part of a getLatestBlockhash response.
type LatestBlockhash struct {
	Blockhash            string `json:"blockhash"`
	LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
}

// LatestBlockhashResponse is a complete getLatestBlockhash response.
type LatestBlockhashResponse struct {
	Context Context         `json:"context"`
	Value   LatestBlockhash `json:"value"`
}

// AccountInfo describes one account as returned by getAccountInfo.
type AccountInfo struct {
	// Data holds the account's raw bytes with its encoding name,
	// e.g. ["bW9ja2RhdGE=", "base64"].
	Data       []string `json:"data"`
	Executable bool     `json:"executable"`
	Lamports   uint64   `json:"lamports"`
	Owner      string   `json:"owner"`
	RentEpoch  uint64   `json:"rentEpoch"`
}

// DecodeData returns the account's raw bytes, verifying the encoding the
// node claims to have used.
func (a *AccountInfo) DecodeData() ([]byte, error) {
	if len(a.Data) != 2 {
		return nil, fmt.Errorf("unexpected account data shape (%d parts)", len(a.Data))
	}
	if a.Data[1] != "base64" {
		return nil, fmt.Errorf("unexpected account data encoding %q", a.Data[1])
	}
	return base64.StdEncoding.DecodeString(a.Data[0])
}

// AccountInfoResponse is a complete getAccountInfo response. Value is nil
// when the account doesn't exist.
type AccountInfoResponse struct {
	Context Context      `json:"context"`
	Value   *AccountInfo `json:"value"`
}

// BalanceResponse is a complete getBalance response.
type BalanceResponse struct {
	Context Context `json:"context"`
	Value   uint64  `json:"value"`
}

// SignatureStatus describes the confirmation progress of one submitted
// transaction. Err is non-null JSON when the transaction executed and
// failed.
type SignatureStatus struct {
	Slot               uint64          `json:"slot"`
	Confirmations      *uint64         `json:"confirmations"`
	Err                json.RawMessage `json:"err"`
	ConfirmationStatus string          `json:"confirmationStatus"`
}

// Failed reports whether the transaction executed with an error.
func (s *SignatureStatus) Failed() bool {
	return len(s.Err) > 0 && string(s.Err) != "null"
}

// SignatureStatusesResponse is a complete getSignatureStatuses response,
// one entry per requested signature, null for unknown ones.
type SignatureStatusesResponse struct {
	Context Context            `json:"context"`
	Value   []*SignatureStatus `json:"value"`
}

// Version is a getVersion response.
type Version struct {
	SolanaCore string `json:"solana-core"`
	FeatureSet uint64 `json:"feature-set"`
}
