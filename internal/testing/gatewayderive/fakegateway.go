package gatewayderive

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/civicteam/gateway-derive/internal/core/gatewayderive"
)

// fixtureToken is the on-disk shape FakeGatewayProgram uses for gateway
// token accounts. It is deliberately richer than gatewayderive.GatewayToken
// (spec.md §3 says the real token's layout is opaque beyond three fields);
// this program only ever reads those three plus State for liveness.
// ExpireTime is stored and updated by UpdateExpiry but VerifyGatewayToken
// does not consult it.
type fixtureToken struct {
	GatekeeperNetwork solana.PublicKey
	OwnerWallet       solana.PublicKey
	IssuingGatekeeper solana.PublicKey
	State             uint8
	ExpireTime        *int64
}

// FakeGatewayProgram is an in-memory stand-in for the real, out-of-scope
// Gateway program (spec.md §1): it implements both the CPI client the
// engine calls out through and the token verifier the engine calls in on,
// storing everything in a shared MemoryAccountStore.
type FakeGatewayProgram struct {
	ProgramID solana.PublicKey
	Store     *MemoryAccountStore
	Now       func() int64

	gatekeepers map[[64]byte]bool // (gatekeeper || network) -> registered
	features    map[solana.PublicKey]bool
}

func NewFakeGatewayProgram(programID solana.PublicKey, store *MemoryAccountStore, now func() int64) *FakeGatewayProgram {
	return &FakeGatewayProgram{
		ProgramID:   programID,
		Store:       store,
		Now:         now,
		gatekeepers: make(map[[64]byte]bool),
		features:    make(map[solana.PublicKey]bool),
	}
}

func gatekeeperKey(gatekeeper, network solana.PublicKey) [64]byte {
	var k [64]byte
	copy(k[:32], gatekeeper[:])
	copy(k[32:], network[:])
	return k
}

func (f *FakeGatewayProgram) AddGatekeeper(payer, gatekeeper, gatekeeperNetwork solana.PublicKey) error {
	f.gatekeepers[gatekeeperKey(gatekeeper, gatekeeperNetwork)] = true
	return nil
}

func (f *FakeGatewayProgram) AddFeatureToNetwork(gatekeeperNetwork, featureAccount solana.PublicKey) error {
	f.features[gatekeeperNetwork] = true
	return nil
}

func (f *FakeGatewayProgram) IssueVanilla(params gatewayderive.IssueVanillaParams) error {
	if !f.gatekeepers[gatekeeperKey(params.Gatekeeper, params.GatekeeperNetwork)] {
		return fmt.Errorf("gatekeeper %s not registered for network %s", params.Gatekeeper, params.GatekeeperNetwork)
	}
	tok := fixtureToken{
		GatekeeperNetwork: params.GatekeeperNetwork,
		OwnerWallet:       params.Recipient,
		IssuingGatekeeper: params.Gatekeeper,
		State:             0, // active
		ExpireTime:        params.ExpireTime,
	}
	data, err := marshalFixtureToken(&tok)
	if err != nil {
		return err
	}
	return f.Store.Put(&gatewayderive.AccountInfo{
		Key:      params.GatewayToken,
		Owner:    f.ProgramID,
		Data:     data,
		Lamports: rentExemptMinimum,
	})
}

func (f *FakeGatewayProgram) UpdateExpiry(params gatewayderive.UpdateExpiryParams) error {
	info, err := f.Store.Get(params.GatewayToken)
	if err != nil {
		return err
	}
	tok, err := unmarshalFixtureToken(info.Data)
	if err != nil {
		return err
	}
	tok.ExpireTime = &params.ExpireTime
	data, err := marshalFixtureToken(tok)
	if err != nil {
		return err
	}
	info.Data = data
	return f.Store.Put(info)
}

// rentExemptMinimum stands in for the real cluster's rent-exemption
// threshold; any positive balance is enough for this harness's purposes.
const rentExemptMinimum uint64 = 1_000_000

func (f *FakeGatewayProgram) ParseGatewayToken(data []byte) (*gatewayderive.GatewayToken, error) {
	tok, err := unmarshalFixtureToken(data)
	if err != nil {
		return nil, err
	}
	return &gatewayderive.GatewayToken{
		GatekeeperNetwork: tok.GatekeeperNetwork,
		OwnerWallet:       tok.OwnerWallet,
		IssuingGatekeeper: tok.IssuingGatekeeper,
		State:             gatewayderive.GatewayTokenState(tok.State),
	}, nil
}

func (f *FakeGatewayProgram) VerifyGatewayToken(token *gatewayderive.GatewayToken, expectedOwner, expectedNetwork solana.PublicKey, balance uint64, expectedFeature *solana.PublicKey) error {
	if token.State != gatewayderive.GatewayTokenStateActive {
		return fmt.Errorf("token is not active")
	}
	if !token.OwnerWallet.Equals(expectedOwner) {
		return fmt.Errorf("token owner mismatch")
	}
	if !token.GatekeeperNetwork.Equals(expectedNetwork) {
		return fmt.Errorf("token network mismatch")
	}
	if balance == 0 {
		return fmt.Errorf("token account is not rent-exempt")
	}
	return nil
}

func marshalFixtureToken(t *fixtureToken) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	if err := enc.Encode(t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func unmarshalFixtureToken(data []byte) (*fixtureToken, error) {
	t := &fixtureToken{}
	dec := bin.NewBorshDecoder(data)
	if err := dec.Decode(t); err != nil {
		return nil, err
	}
	return t, nil
}
