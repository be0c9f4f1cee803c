package rpcclient

import (
	"errors"
	"fmt"

	"github.com/solpact/solpact/pkg/crypto/keys"
	"github.com/solpact/solpact/pkg/rpc/result"
	"github.com/solpact/solpact/pkg/transaction"
)

// ErrAccountNotFound is returned by GetAccountInfo when the queried account
// doesn't exist on the network.
var ErrAccountNotFound = errors.New("account not found")

// GetVersion returns the software version the node runs.
func (c *Client) GetVersion() (*result.Version, error) {
	var resp = new(result.Version)
	if err := c.performRequest("getVersion", nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetLatestBlockhash returns a recent blockhash suitable for anchoring a new
// transaction, along with the last block height it's valid at.
func (c *Client) GetLatestBlockhash() (transaction.Hash, uint64, error) {
	var resp result.LatestBlockhashResponse
	params := []interface{}{map[string]interface{}{"commitment": c.opts.Commitment}}
	if err := c.performRequest("getLatestBlockhash", params, &resp); err != nil {
		return transaction.Hash{}, 0, err
	}
	h, err := transaction.NewHashFromString(resp.Value.Blockhash)
	if err != nil {
		return transaction.Hash{}, 0, err
	}
	return h, resp.Value.LastValidBlockHeight, nil
}

// SendTransaction submits a fully signed transaction and returns its
// signature string. One shot: a rejected or dropped transaction is the
// caller's problem to resubmit.
func (c *Client) SendTransaction(tx *transaction.Transaction) (string, error) {
	b64, err := tx.Base64()
	if err != nil {
		return "", err
	}
	var sig string
	params := []interface{}{
		b64,
		map[string]interface{}{
			"encoding":            "base64",
			"preflightCommitment": c.opts.Commitment,
		},
	}
	if err := c.performRequest("sendTransaction", params, &sig); err != nil {
		return "", err
	}
	return sig, nil
}

// GetSignatureStatuses returns the confirmation status of every given
// signature, nil for signatures the node doesn't know.
func (c *Client) GetSignatureStatuses(sigs ...string) ([]*result.SignatureStatus, error) {
	var resp result.SignatureStatusesResponse
	params := []interface{}{
		sigs,
		map[string]interface{}{"searchTransactionHistory": true},
	}
	if err := c.performRequest("getSignatureStatuses", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Value) != len(sigs) {
		return nil, fmt.Errorf("got %d statuses for %d signatures", len(resp.Value), len(sigs))
	}
	return resp.Value, nil
}

// GetAccountInfo returns the raw state of the given account.
func (c *Client) GetAccountInfo(addr keys.PublicKey) (*result.AccountInfo, error) {
	var resp result.AccountInfoResponse
	params := []interface{}{
		addr.String(),
		map[string]interface{}{
			"encoding":   "base64",
			"commitment": c.opts.Commitment,
		},
	}
	if err := c.performRequest("getAccountInfo", params, &resp); err != nil {
		return nil, err
	}
	if resp.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, addr)
	}
	return resp.Value, nil
}

// GetBalance returns the lamport balance of the given account.
func (c *Client) GetBalance(addr keys.PublicKey) (uint64, error) {
	var resp result.BalanceResponse
	params := []interface{}{
		addr.String(),
		map[string]interface{}{"commitment": c.opts.Commitment},
	}
	if err := c.performRequest("getBalance", params, &resp); err != nil {
		return 0, err
	}
	return resp.Value, nil
}

// RequestAirdrop asks the test-network faucet to fund the given account and
// returns the funding transaction's signature.
func (c *Client) RequestAirdrop(addr keys.PublicKey, lamports uint64) (string, error) {
	var sig string
	params := []interface{}{addr.String(), lamports}
	if err := c.performRequest("requestAirdrop", params, &sig); err != nil {
		return "", err
	}
	return sig, nil
}
