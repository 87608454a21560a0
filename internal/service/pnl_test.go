package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptatrack/cryptatrack/internal/logger"
	"github.com/cryptatrack/cryptatrack/models"
)

func TestPnL_EncryptedPnL_Delegates(t *testing.T) {
	gw := &stubGateway{}
	svc := NewPnLService(gw, logger.Nop())

	initial := models.EncryptedValue{Encrypted: "enc-initial"}
	current := models.EncryptedValue{Encrypted: "enc-current"}

	result, err := svc.EncryptedPnL(context.Background(), initial, current)

	require.NoError(t, err)
	assert.Equal(t, "pnl-result", result.Encrypted)
	require.Len(t, gw.encryptedPairs, 1)
	assert.Equal(t, "enc-initial", gw.encryptedPairs[0][0].Encrypted)
	assert.Equal(t, "enc-current", gw.encryptedPairs[0][1].Encrypted)
}

func TestPnL_PlainPnL_Delegates(t *testing.T) {
	gw := &stubGateway{pnlResp: models.PnLResponse{PnL: 500, PnLPercent: 50, Status: "profit"}}
	svc := NewPnLService(gw, logger.Nop())

	resp, err := svc.PlainPnL(context.Background(), decimal.NewFromInt(1000), decimal.NewFromInt(1500))

	require.NoError(t, err)
	assert.InDelta(t, 500.0, resp.PnL, 1e-9)
	assert.InDelta(t, 50.0, resp.PnLPercent, 1e-9)

	require.Len(t, gw.pnlRequests, 1)
	assert.InDelta(t, 1000.0, gw.pnlRequests[0].InitialValue, 1e-9)
	assert.False(t, gw.pnlRequests[0].EncryptedMode)
}

func TestPnL_PlainPnL_ZeroInitial_RejectedLocally(t *testing.T) {
	gw := &stubGateway{}
	svc := NewPnLService(gw, logger.Nop())

	_, err := svc.PlainPnL(context.Background(), decimal.Zero, decimal.NewFromInt(100))

	require.ErrorIs(t, err, ErrZeroInitialValue)
	assert.Empty(t, gw.pnlRequests, "zero initial must not reach the relay")
}

func TestPnL_PlainPnL_GatewayErrorPropagates(t *testing.T) {
	gw := &stubGateway{pnlErr: assert.AnError}
	svc := NewPnLService(gw, logger.Nop())

	_, err := svc.PlainPnL(context.Background(), decimal.NewFromInt(10), decimal.NewFromInt(20))

	require.ErrorIs(t, err, assert.AnError)
}
