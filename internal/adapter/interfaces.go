package adapter

import (
	"context"

	"github.com/cryptatrack/cryptatrack/models"
)

// ComputeGateway is the client-side view of the relay's encrypted-compute
// surface. Implementations never fail a compute call: unreachable upstreams
// yield a tagged mock response instead.
type ComputeGateway interface {
	// ComputeOnEncrypted submits an operation over encrypted inputs. Any
	// transport or upstream failure resolves to a mock response with
	// Signature == models.MockSignature and Mock == true, never an error.
	ComputeOnEncrypted(ctx context.Context, req models.ComputeRequest) (models.ComputeResponse, error)

	// CalculateEncryptedPnL runs the calculate_pnl operation over two
	// encrypted values.
	CalculateEncryptedPnL(ctx context.Context, initial, current models.EncryptedValue) (models.EncryptedValue, error)

	// AggregateEncryptedValues sums the given values remotely. Zero inputs
	// is a contract violation and returns ErrEmptyAggregation regardless of
	// gateway reachability.
	AggregateEncryptedValues(ctx context.Context, values []models.EncryptedValue) (models.EncryptedValue, error)

	// EncryptRemote asks the relay to encrypt data with the network key.
	// Unlike compute calls this DOES fail on upstream errors, so the caller
	// can fall back to the local codec.
	EncryptRemote(ctx context.Context, data string) (models.EncryptedValue, error)

	// CheckNetworkHealth reports the remote network's metrics. Never fails:
	// any error yields offline metrics.
	CheckNetworkHealth(ctx context.Context) models.Metrics

	// CalculatePnL runs the relay's plaintext PnL mode.
	CalculatePnL(ctx context.Context, req models.PnLRequest) (models.PnLResponse, error)

	// SessionID is the identifier attached to every compute call.
	SessionID() string
}

// ChainReader reads raw wallet holdings from the chain-read API.
type ChainReader interface {
	// FetchWalletAssets returns every asset with a positive balance for the
	// wallet, the native token first.
	FetchWalletAssets(ctx context.Context, walletAddress string) ([]models.ChainAsset, error)
}

// PriceSource is one ranked provider of price observations.
type PriceSource interface {
	// FetchPrices returns observations for whichever of the requested
	// symbols the source knows. A partial result is not an error.
	FetchPrices(ctx context.Context, symbols []string) (models.PriceMap, error)
}

// ArciumNetwork is the relay-side client for the remote compute network.
// All methods require credentials; they return ErrCredentialsMissing without
// them and ErrUpstreamCompute on transport or non-2xx failures.
type ArciumNetwork interface {
	Compute(ctx context.Context, sessionID string, req models.ComputeRequest) (models.ComputeResponse, error)
	Encrypt(ctx context.Context, data string) (models.EncryptedValue, error)
	Health(ctx context.Context) (models.Metrics, error)
	ComputePnL(ctx context.Context, req models.PnLRequest) (models.PnLResponse, error)
}
