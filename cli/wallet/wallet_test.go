package wallet_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/solpact/solpact/cli/app"
	"github.com/solpact/solpact/pkg/crypto/keys"
	"github.com/solpact/solpact/pkg/rpc"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

func runApp(out *bytes.Buffer, args ...string) error {
	ctl := app.New()
	ctl.Writer = out
	ctl.ErrWriter = out
	ctl.ExitErrHandler = func(*cli.Context, error) {}
	return ctl.Run(append([]string{"solpact"}, args...))
}

func TestInitAndDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "id.json")
	out := bytes.NewBuffer(nil)

	require.NoError(t, runApp(out, "wallet", "init", "-p", path))

	priv, err := keys.NewPrivateKeyFromFile(path)
	require.NoError(t, err)
	require.Contains(t, out.String(), priv.Address())

	out.Reset()
	require.NoError(t, runApp(out, "wallet", "dump", "-p", path))
	require.Contains(t, out.String(), priv.Address())
}

func TestInitRequiresPath(t *testing.T) {
	require.Error(t, runApp(bytes.NewBuffer(nil), "wallet", "init"))
}

func TestBalanceAndAirdrop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpc.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		var result string
		switch req.Method {
		case "getBalance":
			result = `{"context":{"slot":1},"value":2039280}`
		case "requestAirdrop":
			result = `"airdropSig"`
		case "getSignatureStatuses":
			result = `{"context":{"slot":2},"value":[{"slot":2,"confirmations":3,"err":null,"confirmationStatus":"confirmed"}]}`
		default:
			t.Fatalf("unexpected method %s", req.Method)
		}
		_, _ = fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":%s}`, req.ID, result)
	}))
	t.Cleanup(srv.Close)

	path := filepath.Join(t.TempDir(), "id.json")
	priv, err := keys.NewPrivateKey()
	require.NoError(t, err)
	require.NoError(t, priv.Save(path))

	out := bytes.NewBuffer(nil)
	require.NoError(t, runApp(out, "wallet", "balance", "-p", path, "-r", srv.URL))
	require.Contains(t, out.String(), "2039280")

	out.Reset()
	require.NoError(t, runApp(out, "wallet", "airdrop", "-p", path, "-r", srv.URL, "1000000000"))
	require.Contains(t, out.String(), "airdropSig")

	require.Error(t, runApp(out, "wallet", "airdrop", "-p", path, "-r", srv.URL, "many"))
}
