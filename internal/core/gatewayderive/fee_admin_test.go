package gatewayderive_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	gd "github.com/civicteam/gateway-derive/internal/core/gatewayderive"
	gdtest "github.com/civicteam/gateway-derive/internal/testing/gatewayderive"
)

func TestCreateFeeThenUpdateFeeRoundTrip(t *testing.T) {
	h := gdtest.NewHarness()
	authority := solana.NewWallet().PublicKey()
	gatekeeper := solana.NewWallet().PublicKey()
	network := solana.NewWallet().PublicKey()
	addr, bump, err := gd.FindFeeAddress(h.ProgramID, gatekeeper, network)
	require.NoError(t, err)

	created, err := h.Engine.CreateFee(gd.FeeAdminParams{
		Authority:         authority,
		Gatekeeper:        gatekeeper,
		GatekeeperNetwork: network,
		FeeAddress:        addr,
		Bump:              bump,
		FeeType:           gd.FeeTypeIssuerOnly,
		IssueAmount:       500,
		RefreshAmount:     50,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(500), created.AmountForAction(false))

	updated, err := h.Engine.UpdateFee(gd.FeeAdminParams{
		Authority:         authority,
		Gatekeeper:        gatekeeper,
		GatekeeperNetwork: network,
		FeeAddress:        addr,
		Bump:              bump,
		FeeType:           gd.FeeTypeIssuerOnly,
		IssueAmount:       900,
		RefreshAmount:     90,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(900), updated.AmountForAction(false))

	info, err := h.Store.Get(addr)
	require.NoError(t, err)
	stored, err := gd.UnmarshalFee(info.Data)
	require.NoError(t, err)
	require.Equal(t, uint64(900), stored.AmountForAction(false))
}

func TestCreateFeeRejectsAddressMismatch(t *testing.T) {
	h := gdtest.NewHarness()
	authority := solana.NewWallet().PublicKey()
	gatekeeper := solana.NewWallet().PublicKey()
	network := solana.NewWallet().PublicKey()
	wrongAddr := solana.NewWallet().PublicKey()

	_, err := h.Engine.CreateFee(gd.FeeAdminParams{
		Authority:         authority,
		Gatekeeper:        gatekeeper,
		GatekeeperNetwork: network,
		FeeAddress:        wrongAddr,
		Bump:              255,
		FeeType:           gd.FeeTypeIssuerOnly,
	})
	require.Error(t, err)
	code, ok := gd.CodeOf(err)
	require.True(t, ok)
	require.Equal(t, gd.CodeInvalidFeeAccount, code)
}

func TestRemoveFeeClosesAccountUnconditionally(t *testing.T) {
	h := gdtest.NewHarness()
	authority := solana.NewWallet().PublicKey()
	gatekeeper := solana.NewWallet().PublicKey()
	network := solana.NewWallet().PublicKey()
	addr, bump, err := gd.FindFeeAddress(h.ProgramID, gatekeeper, network)
	require.NoError(t, err)

	_, err = h.Engine.CreateFee(gd.FeeAdminParams{
		Authority:         authority,
		Gatekeeper:        gatekeeper,
		GatekeeperNetwork: network,
		FeeAddress:        addr,
		Bump:              bump,
		FeeType:           gd.FeeTypeIssuerOnly,
		IssueAmount:       500,
	})
	require.NoError(t, err)

	err = h.Engine.RemoveFee(gd.FeeAdminParams{
		Authority:         authority,
		Gatekeeper:        gatekeeper,
		GatekeeperNetwork: network,
		FeeAddress:        addr,
		Bump:              bump,
	})
	require.NoError(t, err)

	require.Equal(t, uint64(0), h.Store.Balance(addr))

	// The account is gone; create_fee can reinitialize the same address
	// indistinguishably from a first-time creation.
	recreated, err := h.Engine.CreateFee(gd.FeeAdminParams{
		Authority:         authority,
		Gatekeeper:        gatekeeper,
		GatekeeperNetwork: network,
		FeeAddress:        addr,
		Bump:              bump,
		FeeType:           gd.FeeTypeIssuerOnly,
		IssueAmount:       123,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(123), recreated.AmountForAction(false))
}
