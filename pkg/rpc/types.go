/*
Package rpc contains the types used for JSON-RPC 2.0 communication with
network nodes: the basic request/response envelope and the error shape
nodes respond with.
*/
package rpc

import (
	"encoding/json"
	"fmt"
)

// JSONRPCVersion is the only JSON-RPC protocol version supported.
const JSONRPCVersion = "2.0"

type (
	// Request represents a JSON-RPC request sent to a node.
	Request struct {
		// JSONRPC is the protocol version, only valid when it contains
		// JSONRPCVersion.
		JSONRPC string `json:"jsonrpc"`
		// Method is the method being called.
		Method string `json:"method"`
		// Params is a set of method-specific parameters passed to the call.
		// Nodes expect it to be a positional array.
		Params []interface{} `json:"params"`
		// ID is a numeric identifier associated with this request.
		ID uint64 `json:"id"`
	}

	// Header is a generic JSON-RPC 2.0 response header.
	Header struct {
		ID      json.RawMessage `json:"id"`
		JSONRPC string          `json:"jsonrpc"`
	}

	// Response represents a standard raw JSON-RPC 2.0 response.
	Response struct {
		Header
		Error  *Error          `json:"error,omitempty"`
		Result json.RawMessage `json:"result,omitempty"`
	}

	// Error represents a JSON-RPC 2.0 error object embedded in a failed
	// response. Nodes put simulation failures here as well, so Data often
	// carries the interesting part.
	Error struct {
		Code    int64           `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data,omitempty"`
	}
)

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Data) == 0 {
		return fmt.Sprintf("%s (%d)", e.Message, e.Code)
	}
	return fmt.Sprintf("%s (%d) - %s", e.Message, e.Code, e.Data)
}
