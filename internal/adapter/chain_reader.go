package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/models"
)

const (
	// NativeMint is the pseudo-mint address of the chain's native token.
	NativeMint = "11111111111111111111111111111111"

	tokenProgram = "TokenkegQfeZyiNwAJsyFbPVwwQQfKP6Sc6k8w2k8w"

	lamportsPerSol = 1e9
)

// tokenSymbols and tokenNames map well-known mints to display metadata.
// Unknown mints render as UNKNOWN / Unknown Token.
var tokenSymbols = map[string]string{
	"So11111111111111111111111111111111111111112":  "SOL",
	"EPjFWaLb3ufEZzauUZFc3Z6xwg4ziUvvQKP81EcLqQ45": "USDC",
	"JUPyiwrYJFskUPiHa7hkeR8QnsDjsKc5DiiYWeLMb2V":  "JUP",
	"orcaEKTdK7LKz57chysJ34G6V5dT42j5d5cH3RTAp7":   "ORCA",
}

var tokenNames = map[string]string{
	"So11111111111111111111111111111111111111112":  "Solana",
	"EPjFWaLb3ufEZzauUZFc3Z6xwg4ziUvvQKP81EcLqQ45": "USD Coin",
	"JUPyiwrYJFskUPiHa7hkeR8QnsDjsKc5DiiYWeLMb2V":  "Jupiter",
	"orcaEKTdK7LKz57chysJ34G6V5dT42j5d5cH3RTAp7":   "Orca",
}

type ChainReaderConfig struct {
	RPCEndpoint string
	Timeout     time.Duration
}

type chainReader struct {
	client *resty.Client
	logger *logger.Logger
}

// NewChainReader builds a [ChainReader] over the JSON-RPC endpoint of the
// chain-read API. The reader is strictly read-only.
func NewChainReader(cfg ChainReaderConfig, log *logger.Logger) ChainReader {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(cfg.RPCEndpoint).
		SetTimeout(cfg.Timeout)

	return &chainReader{client: cli, logger: log}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// FetchWalletAssets implements [ChainReader]. The native balance comes from
// getBalance; token balances from getTokenAccountsByOwner with jsonParsed
// encoding. Zero-balance token accounts are skipped; the native asset is
// always listed, first, even at zero balance.
func (c *chainReader) FetchWalletAssets(ctx context.Context, walletAddress string) ([]models.ChainAsset, error) {
	lamports, err := c.nativeBalance(ctx, walletAddress)
	if err != nil {
		return nil, fmt.Errorf("fetch native balance: %w", err)
	}

	assets := []models.ChainAsset{{
		Mint:     NativeMint,
		Amount:   strconv.FormatFloat(float64(lamports)/lamportsPerSol, 'f', -1, 64),
		Decimals: 9,
		Symbol:   "SOL",
		Name:     "Solana",
	}}

	tokens, err := c.tokenBalances(ctx, walletAddress)
	if err != nil {
		return nil, fmt.Errorf("fetch token balances: %w", err)
	}

	return append(assets, tokens...), nil
}

func (c *chainReader) nativeBalance(ctx context.Context, walletAddress string) (uint64, error) {
	var out struct {
		Value uint64 `json:"value"`
	}
	if err := c.call(ctx, "getBalance", []any{walletAddress}, &out); err != nil {
		return 0, err
	}
	return out.Value, nil
}

func (c *chainReader) tokenBalances(ctx context.Context, walletAddress string) ([]models.ChainAsset, error) {
	params := []any{
		walletAddress,
		map[string]string{"programId": tokenProgram},
		map[string]string{"encoding": "jsonParsed"},
	}

	var out struct {
		Value []struct {
			Account struct {
				Data struct {
					Parsed struct {
						Info struct {
							Mint        string `json:"mint"`
							TokenAmount struct {
								UIAmount *float64 `json:"uiAmount"`
								Decimals int      `json:"decimals"`
							} `json:"tokenAmount"`
						} `json:"info"`
					} `json:"parsed"`
				} `json:"data"`
			} `json:"account"`
		} `json:"value"`
	}
	if err := c.call(ctx, "getTokenAccountsByOwner", params, &out); err != nil {
		return nil, err
	}

	assets := make([]models.ChainAsset, 0, len(out.Value))
	for _, entry := range out.Value {
		info := entry.Account.Data.Parsed.Info
		if info.TokenAmount.UIAmount == nil || *info.TokenAmount.UIAmount <= 0 {
			continue
		}

		assets = append(assets, models.ChainAsset{
			Mint:     info.Mint,
			Amount:   strconv.FormatFloat(*info.TokenAmount.UIAmount, 'f', -1, 64),
			Decimals: info.TokenAmount.Decimals,
			Symbol:   TokenSymbol(info.Mint),
			Name:     TokenName(info.Mint),
		})
	}

	return assets, nil
}

func (c *chainReader) call(ctx context.Context, method string, params []any, result any) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params}).
		Post("")
	if err != nil {
		return fmt.Errorf("rpc %s: %w", method, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("rpc %s: http %d", method, resp.StatusCode())
	}

	var rpcResp rpcResponse
	if err = json.Unmarshal(resp.Body(), &rpcResp); err != nil {
		return fmt.Errorf("rpc %s: decode: %w", method, err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("rpc %s: %d %s", method, rpcResp.Error.Code, rpcResp.Error.Message)
	}

	if err = json.Unmarshal(rpcResp.Result, result); err != nil {
		return fmt.Errorf("rpc %s: decode result: %w", method, err)
	}
	return nil
}

// TokenSymbol resolves a mint address to its ticker symbol.
func TokenSymbol(mint string) string {
	if s, ok := tokenSymbols[mint]; ok {
		return s
	}
	return "UNKNOWN"
}

// TokenName resolves a mint address to its display name.
func TokenName(mint string) string {
	if n, ok := tokenNames[mint]; ok {
		return n
	}
	return "Unknown Token"
}
