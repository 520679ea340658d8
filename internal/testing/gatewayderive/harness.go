package gatewayderive

import (
	"github.com/gagliardetto/solana-go"

	"github.com/civicteam/gateway-derive/internal/core/gatewayderive"
)

// Harness wires a MemoryAccountStore and a FakeGatewayProgram into a ready
// Deps/Engine pair: tests build a Harness once, then use its fluent helpers
// to set up fixture state before calling into the Engine under test.
type Harness struct {
	ProgramID        solana.PublicKey
	SystemProgramID  solana.PublicKey
	GatewayProgramID solana.PublicKey

	Store   *MemoryAccountStore
	Gateway *FakeGatewayProgram
	Clock   int64

	Engine *gatewayderive.Engine
}

// NewHarness builds a Harness with fresh fixture program IDs and a clock
// fixed at a deterministic instant, analogous to credential/builder.go's
// use of a fixed ledger time for reproducible test fixtures.
func NewHarness() *Harness {
	store := NewMemoryAccountStore()
	programID := solana.NewWallet().PublicKey()
	gatewayProgramID := solana.NewWallet().PublicKey()

	h := &Harness{
		ProgramID:        programID,
		SystemProgramID:  solana.SystemProgramID,
		GatewayProgramID: gatewayProgramID,
		Store:            store,
		Clock:            1_700_000_000,
	}
	h.Gateway = NewFakeGatewayProgram(gatewayProgramID, store, h.now)

	h.Engine = gatewayderive.NewEngine(&gatewayderive.Deps{
		ProgramID:        programID,
		SystemProgramID:  solana.SystemProgramID,
		GatewayProgramID: gatewayProgramID,
		Store:            store,
		Verifier:         h.Gateway,
		Gateway:          h.Gateway,
		Now:              h.now,
	})
	return h
}

func (h *Harness) now() int64 { return h.Clock }

// Advance moves the fixture clock forward by seconds, the way
// credential_test.go advances the ledger's close time between steps.
func (h *Harness) Advance(seconds int64) {
	h.Clock += seconds
}

// FundedWallet returns a fresh keypair's public key with lamports already
// credited, standing in for a funded Solana wallet.
func (h *Harness) FundedWallet(lamports uint64) solana.PublicKey {
	key := solana.NewWallet().PublicKey()
	h.Store.Fund(key, lamports)
	return key
}

// RegisterGatekeeper marks gatekeeper as authorized to issue tokens on
// gatekeeperNetwork in the fake Gateway program, without going through
// Engine.Initialize - useful for building component passes whose issuing
// gatekeeper is unrelated to the derived pass under test.
func (h *Harness) RegisterGatekeeper(gatekeeper, gatekeeperNetwork solana.PublicKey) {
	_ = h.Gateway.AddGatekeeper(gatekeeper, gatekeeper, gatekeeperNetwork)
}

// ComponentPass describes one fixture gateway token to mint via IssueVanilla
// for use as a component pass in an issue/refresh call.
type ComponentPass struct {
	Owner             solana.PublicKey
	GatekeeperNetwork solana.PublicKey
	Gatekeeper        solana.PublicKey
	ExpireTime        *int64
}

// IssueComponentPass registers the gatekeeper if needed and mints a fixture
// gateway token account, returning its address for use as a
// remaining-account entry.
func (h *Harness) IssueComponentPass(p ComponentPass) solana.PublicKey {
	h.RegisterGatekeeper(p.Gatekeeper, p.GatekeeperNetwork)
	tokenAddr := solana.NewWallet().PublicKey()
	if err := h.Gateway.IssueVanilla(gatewayderive.IssueVanillaParams{
		Payer:             p.Owner,
		Recipient:         p.Owner,
		GatewayToken:      tokenAddr,
		Gatekeeper:        p.Gatekeeper,
		GatekeeperNetwork: p.GatekeeperNetwork,
		ExpireTime:        p.ExpireTime,
	}); err != nil {
		panic(err) // fixture setup only; a failure here is a broken test, not a case under test
	}
	return tokenAddr
}

// CreateFee stores a Fee record at its PDA for (gatekeeper, network),
// returning the address and bump so callers can pass them through as a
// remaining-account/fee-bump pair.
func (h *Harness) CreateFee(gatekeeper, gatekeeperNetwork solana.PublicKey, fee *gatewayderive.Fee) (solana.PublicKey, uint8) {
	addr, bump, err := gatewayderive.FindFeeAddress(h.ProgramID, gatekeeper, gatekeeperNetwork)
	if err != nil {
		panic(err)
	}
	data, err := fee.Marshal()
	if err != nil {
		panic(err)
	}
	if err := h.Store.Put(&gatewayderive.AccountInfo{
		Key:   addr,
		Owner: h.ProgramID,
		Data:  data,
	}); err != nil {
		panic(err)
	}
	return addr, bump
}
