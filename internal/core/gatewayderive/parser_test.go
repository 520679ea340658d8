package gatewayderive_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	gd "github.com/civicteam/gateway-derive/internal/core/gatewayderive"
	gdtest "github.com/civicteam/gateway-derive/internal/testing/gatewayderive"
)

func newDeps(h *gdtest.Harness) *gd.Deps {
	return &gd.Deps{
		ProgramID:        h.ProgramID,
		SystemProgramID:  h.SystemProgramID,
		GatewayProgramID: h.GatewayProgramID,
		Store:            h.Store,
		Verifier:         h.Gateway,
		Gateway:          h.Gateway,
		Now:              func() int64 { return h.Clock },
	}
}

func TestParseComponentPassesRejectsStrideMismatch(t *testing.T) {
	h := gdtest.NewHarness()
	_, err := gd.ParseComponentPasses(newDeps(h), []solana.PublicKey{solana.NewWallet().PublicKey()}, []uint8{1, 2})
	require.Error(t, err)
	code, ok := gd.CodeOf(err)
	require.True(t, ok)
	require.Equal(t, gd.CodeIncorrectFeeBumpCount, code)
}

func TestParseComponentPassesNoFeeRecord(t *testing.T) {
	h := gdtest.NewHarness()
	owner := h.FundedWallet(1_000)
	network := solana.NewWallet().PublicKey()
	gatekeeper := solana.NewWallet().PublicKey()
	token := h.IssueComponentPass(gdtest.ComponentPass{Owner: owner, GatekeeperNetwork: network, Gatekeeper: gatekeeper})
	feeAddr, bump, err := gd.FindFeeAddress(h.ProgramID, gatekeeper, network)
	require.NoError(t, err)

	bundles, err := gd.ParseComponentPasses(newDeps(h), []solana.PublicKey{token, feeAddr, gatekeeper}, []uint8{bump})
	require.NoError(t, err)
	require.Len(t, bundles, 1)
	require.Nil(t, bundles[0].Fee)
	require.Equal(t, uint64(0), bundles[0].Fee.AmountForAction(false))
}

func TestParseComponentPassesInvalidFeeAddress(t *testing.T) {
	h := gdtest.NewHarness()
	owner := h.FundedWallet(1_000)
	network := solana.NewWallet().PublicKey()
	gatekeeper := solana.NewWallet().PublicKey()
	token := h.IssueComponentPass(gdtest.ComponentPass{Owner: owner, GatekeeperNetwork: network, Gatekeeper: gatekeeper})

	wrongFeeAddr := solana.NewWallet().PublicKey()
	_, err := gd.ParseComponentPasses(newDeps(h), []solana.PublicKey{token, wrongFeeAddr, gatekeeper}, []uint8{7})
	require.Error(t, err)
	code, ok := gd.CodeOf(err)
	require.True(t, ok)
	require.Equal(t, gd.CodeInvalidFeeAccount, code)
}

func TestParseComponentPassesGatekeeperMismatch(t *testing.T) {
	h := gdtest.NewHarness()
	owner := h.FundedWallet(1_000)
	network := solana.NewWallet().PublicKey()
	gatekeeper := solana.NewWallet().PublicKey()
	token := h.IssueComponentPass(gdtest.ComponentPass{Owner: owner, GatekeeperNetwork: network, Gatekeeper: gatekeeper})
	feeAddr, bump, err := gd.FindFeeAddress(h.ProgramID, gatekeeper, network)
	require.NoError(t, err)

	other := solana.NewWallet().PublicKey()
	_, err = gd.ParseComponentPasses(newDeps(h), []solana.PublicKey{token, feeAddr, other}, []uint8{bump})
	require.Error(t, err)
	code, ok := gd.CodeOf(err)
	require.True(t, ok)
	require.Equal(t, gd.CodeGatekeeperMismatch, code)
}

func TestParseComponentPassesFeeAccountSystemOwnedNonZero(t *testing.T) {
	h := gdtest.NewHarness()
	owner := h.FundedWallet(1_000)
	network := solana.NewWallet().PublicKey()
	gatekeeper := solana.NewWallet().PublicKey()
	token := h.IssueComponentPass(gdtest.ComponentPass{Owner: owner, GatekeeperNetwork: network, Gatekeeper: gatekeeper})
	feeAddr, bump, err := gd.FindFeeAddress(h.ProgramID, gatekeeper, network)
	require.NoError(t, err)
	h.Store.Fund(feeAddr, 1)

	_, err = gd.ParseComponentPasses(newDeps(h), []solana.PublicKey{token, feeAddr, gatekeeper}, []uint8{bump})
	require.Error(t, err)
	code, ok := gd.CodeOf(err)
	require.True(t, ok)
	require.Equal(t, gd.CodeInvalidFeeAccount, code)
}
