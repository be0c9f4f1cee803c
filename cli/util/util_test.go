package util_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/solpact/solpact/cli/app"
	"github.com/solpact/solpact/pkg/crypto/keys"
	"github.com/solpact/solpact/pkg/escrow"
	"github.com/solpact/solpact/pkg/rpc"
	"github.com/solpact/solpact/pkg/transaction"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

func TestEchoAndSquare(t *testing.T) {
	var sent []*transaction.Transaction
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpc.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		var result string
		switch req.Method {
		case "getLatestBlockhash":
			result = fmt.Sprintf(`{"context":{"slot":1},"value":{"blockhash":"%s","lastValidBlockHeight":100}}`,
				transaction.Hash{}.String())
		case "sendTransaction":
			raw, err := base64.StdEncoding.DecodeString(req.Params[0].(string))
			require.NoError(t, err)
			tx, err := transaction.Deserialize(raw)
			require.NoError(t, err)
			sent = append(sent, tx)
			result = `"utilSig"`
		case "getSignatureStatuses":
			result = `{"context":{"slot":2},"value":[{"slot":2,"confirmations":3,"err":null,"confirmationStatus":"confirmed"}]}`
		default:
			t.Fatalf("unexpected method %s", req.Method)
		}
		_, _ = fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":%s}`, req.ID, result)
	}))
	t.Cleanup(srv.Close)

	priv, err := keys.NewPrivateKey()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, priv.Save(path))

	programKey, err := keys.NewPrivateKey()
	require.NoError(t, err)
	program := programKey.PublicKey()

	run := func(args ...string) error {
		ctl := app.New()
		ctl.Writer = bytes.NewBuffer(nil)
		ctl.ExitErrHandler = func(*cli.Context, error) {}
		full := append([]string{"solpact", "util", args[0],
			"-r", srv.URL, "--program-id", program.String()}, args[1:]...)
		return ctl.Run(full)
	}

	require.NoError(t, run("echo", path, "hello there"))
	op, p, err := escrow.DecodePayload(sent[0].Message.Instructions[0].Data)
	require.NoError(t, err)
	require.Equal(t, escrow.OpEcho, op)
	require.Equal(t, "hello there", p.ID)

	require.NoError(t, run("square", path, "12"))
	op, p, err = escrow.DecodePayload(sent[1].Message.Instructions[0].Data)
	require.NoError(t, err)
	require.Equal(t, escrow.OpSquare, op)
	require.EqualValues(t, 12, p.Number)

	require.Error(t, run("square", path, "twelve"))
	require.Len(t, sent, 2)
}
