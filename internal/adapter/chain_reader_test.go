package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptatrack/cryptatrack/internal/logger"
)

const testWallet = "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"

func rpcResult(t *testing.T, w http.ResponseWriter, result any) {
	t.Helper()
	raw, err := json.Marshal(result)
	require.NoError(t, err)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"result":  json.RawMessage(raw),
	})
}

func TestFetchWalletAssets_NativeAndTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		switch req.Method {
		case "getBalance":
			assert.Equal(t, testWallet, req.Params[0])
			rpcResult(t, w, map[string]any{"value": uint64(2_500_000_000)})
		case "getTokenAccountsByOwner":
			rpcResult(t, w, map[string]any{
				"value": []any{
					map[string]any{"account": map[string]any{"data": map[string]any{"parsed": map[string]any{"info": map[string]any{
						"mint":        "EPjFWaLb3ufEZzauUZFc3Z6xwg4ziUvvQKP81EcLqQ45",
						"tokenAmount": map[string]any{"uiAmount": 150.5, "decimals": 6},
					}}}}},
					// zero balance, must be skipped
					map[string]any{"account": map[string]any{"data": map[string]any{"parsed": map[string]any{"info": map[string]any{
						"mint":        "JUPyiwrYJFskUPiHa7hkeR8QnsDjsKc5DiiYWeLMb2V",
						"tokenAmount": map[string]any{"uiAmount": 0.0, "decimals": 6},
					}}}}},
				},
			})
		default:
			t.Fatalf("unexpected rpc method %q", req.Method)
		}
	}))
	defer srv.Close()

	r := NewChainReader(ChainReaderConfig{RPCEndpoint: srv.URL}, logger.Nop())
	assets, err := r.FetchWalletAssets(context.Background(), testWallet)

	require.NoError(t, err)
	require.Len(t, assets, 2)

	assert.Equal(t, "SOL", assets[0].Symbol)
	assert.Equal(t, "2.5", assets[0].Amount)
	assert.Equal(t, 9, assets[0].Decimals)

	assert.Equal(t, "USDC", assets[1].Symbol)
	assert.Equal(t, "USD Coin", assets[1].Name)
	assert.Equal(t, "150.5", assets[1].Amount)
	assert.Equal(t, 6, assets[1].Decimals)
}

func TestFetchWalletAssets_RPCErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      1,
			"error":   map[string]any{"code": -32602, "message": "invalid params"},
		})
	}))
	defer srv.Close()

	r := NewChainReader(ChainReaderConfig{RPCEndpoint: srv.URL}, logger.Nop())
	_, err := r.FetchWalletAssets(context.Background(), "not-a-wallet")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid params")
}

func TestTokenMetadata_UnknownMint(t *testing.T) {
	assert.Equal(t, "UNKNOWN", TokenSymbol("badmint"))
	assert.Equal(t, "Unknown Token", TokenName("badmint"))
}
