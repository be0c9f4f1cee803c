/*
Package rpcclient implements the JSON-RPC client side of talking to network
nodes: one HTTP POST per call, typed results, no retries. Transaction
submission is single-shot, confirmation awaiting is a separate polling step
(see WaitForConfirmation).
*/
package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/solpact/solpact/pkg/rpc"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const (
	defaultDialTimeout    = 4 * time.Second
	defaultRequestTimeout = 15 * time.Second
	defaultPollInterval   = 2 * time.Second
)

// DefaultCommitment is the confirmation level used when none is configured.
const DefaultCommitment = "confirmed"

// Client represents the middleman for executing JSON RPC calls to remote
// nodes. Client is thread-safe and can be used from multiple goroutines.
type Client struct {
	cli      *http.Client
	endpoint *url.URL
	ctx      context.Context
	opts     Options
	log      *zap.Logger
	requestF func(*rpc.Request) (*rpc.Response, error)

	latestReqID *atomic.Uint64
}

// Options defines options for the RPC client. All values are optional.
type Options struct {
	DialTimeout    time.Duration
	RequestTimeout time.Duration
	// PollInterval is the delay between confirmation status polls.
	PollInterval time.Duration
	// Commitment is the confirmation level queries and preflight checks
	// run at. DefaultCommitment when empty.
	Commitment string
	// Logger, when set, gets a debug line per performed request.
	Logger *zap.Logger
}

// New returns a new Client ready to use.
func New(ctx context.Context, endpoint string, opts Options) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = defaultDialTimeout
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.Commitment == "" {
		opts.Commitment = DefaultCommitment
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	cl := &Client{
		cli: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: opts.DialTimeout,
				}).DialContext,
			},
			Timeout: opts.RequestTimeout,
		},
		endpoint:    u,
		ctx:         ctx,
		opts:        opts,
		log:         opts.Logger,
		latestReqID: atomic.NewUint64(0),
	}
	cl.requestF = cl.makeHTTPRequest
	return cl, nil
}

// Close closes unused underlying network connections.
func (c *Client) Close() {
	c.cli.CloseIdleConnections()
}

func (c *Client) getRequestID() uint64 {
	return c.latestReqID.Inc()
}

func (c *Client) performRequest(method string, p []interface{}, v interface{}) error {
	if p == nil {
		p = []interface{}{}
	}
	var r = rpc.Request{
		JSONRPC: rpc.JSONRPCVersion,
		Method:  method,
		Params:  p,
		ID:      c.getRequestID(),
	}

	c.log.Debug("performing request", zap.String("method", method), zap.Uint64("id", r.ID))

	raw, err := c.requestF(&r)

	if raw != nil && raw.Error != nil {
		return fmt.Errorf("%s: %w", method, raw.Error)
	} else if err != nil {
		return err
	} else if raw == nil || raw.Result == nil {
		return errors.New("no result returned")
	}
	return json.Unmarshal(raw.Result, v)
}

func (c *Client) makeHTTPRequest(r *rpc.Request) (*rpc.Response, error) {
	var (
		buf = new(bytes.Buffer)
		raw = new(rpc.Response)
	)

	if err := json.NewEncoder(buf).Encode(r); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(c.ctx, "POST", c.endpoint.String(), buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.cli.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// The node might send us a proper JSON anyway, so look there first and if
	// it parses, it has more relevant data than the HTTP error code.
	err = json.NewDecoder(resp.Body).Decode(raw)
	if err != nil {
		if resp.StatusCode != http.StatusOK {
			err = fmt.Errorf("HTTP %d/%s", resp.StatusCode, http.StatusText(resp.StatusCode))
		} else {
			err = fmt.Errorf("JSON decoding: %w", err)
		}
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// Ping attempts to create a connection to the endpoint and returns an error
// if there is any.
func (c *Client) Ping() error {
	conn, err := net.DialTimeout("tcp", c.endpoint.Host, c.opts.DialTimeout)
	if err != nil {
		return err
	}
	_ = conn.Close()
	return nil
}
