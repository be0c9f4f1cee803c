package rpcclient

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTransactionFailed is returned by WaitForConfirmation when the
// transaction was accepted and executed with an error. The program's own
// rejection reasons surface this way.
var ErrTransactionFailed = errors.New("transaction failed on-chain")

// ErrContextDone is returned when the awaiting context expires before the
// transaction reaches the configured commitment.
var ErrContextDone = errors.New("waiting for confirmation interrupted")

// confirmed reports whether a status string is at least as final as the
// commitment the client runs at.
func (c *Client) confirmed(status string) bool {
	if status == "finalized" {
		return true
	}
	switch c.opts.Commitment {
	case "processed":
		return status == "processed" || status == "confirmed"
	case "finalized":
		return false
	default:
		return status == "confirmed"
	}
}

// WaitForConfirmation blocks until the given transaction signature reaches
// the client's commitment level, the transaction fails on-chain, or ctx is
// done. It polls getSignatureStatuses at the configured interval; a node
// not knowing the signature yet is not an error, just not a confirmation.
func (c *Client) WaitForConfirmation(ctx context.Context, sig string) error {
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
		case <-timer.C:
		}

		statuses, err := c.GetSignatureStatuses(sig)
		if err != nil {
			return err
		}
		if st := statuses[0]; st != nil {
			if st.Failed() {
				return fmt.Errorf("%w: %s", ErrTransactionFailed, st.Err)
			}
			if c.confirmed(st.ConfirmationStatus) {
				return nil
			}
		}
		timer.Reset(c.opts.PollInterval)
	}
}
