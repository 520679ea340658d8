package gatewayderive

import "github.com/gagliardetto/solana-go"

// Engine ties C1-C6 into the six entrypoints. It holds no state of its own
// beyond its Deps, so one Engine can serve many instructions (the JSON-RPC
// server shares a single Engine across all requests).
type Engine struct {
	Deps *Deps
}

func NewEngine(deps *Deps) *Engine {
	return &Engine{Deps: deps}
}

// InitializeParams are the arguments to the initialize entrypoint.
type InitializeParams struct {
	Authority                solana.PublicKey
	SourceGKNs                []solana.PublicKey
	Size                      uint8
	GatekeeperBump            uint8
	Properties                Properties
	DerivedPassAddress        solana.PublicKey
	DerivedGatekeeperAddress  solana.PublicKey
	GatekeeperAccountAddress  solana.PublicKey
	FeatureAccountAddress     solana.PublicKey // only consulted if Properties.ExpireOnUse
}

// Initialize creates a DerivedPass, registers the derived-gatekeeper PDA
// with the Gateway program, and optionally flags the network as
// expire-on-use-capable. See spec.md §4.7.
func (e *Engine) Initialize(p InitializeParams) (*DerivedPass, error) {
	gkInfo, err := e.Deps.Store.Get(p.DerivedGatekeeperAddress)
	if err != nil {
		return nil, errf(CodeNonEmptyAccount, "derived gatekeeper: %v", err)
	}
	if err := RequireEmpty(gkInfo, e.Deps.SystemProgramID); err != nil {
		return nil, err
	}
	gkAccountInfo, err := e.Deps.Store.Get(p.GatekeeperAccountAddress)
	if err != nil {
		return nil, errf(CodeNonEmptyAccount, "gatekeeper account: %v", err)
	}
	if err := RequireEmpty(gkAccountInfo, e.Deps.SystemProgramID); err != nil {
		return nil, err
	}

	derived := &DerivedPass{
		Version:        SchemaVersion,
		Authority:      p.Authority,
		GatekeeperBump: p.GatekeeperBump,
		SourceGKNs:     p.SourceGKNs,
		Properties:     p.Properties,
	}

	// Confirm the caller's bump actually authenticates the PDA before
	// registering anything with the Gateway program.
	expectedGK, err := DerivedGatekeeperAddress(e.Deps.ProgramID, p.Authority, p.GatekeeperBump)
	if err != nil {
		return nil, err
	}
	if !expectedGK.Equals(p.DerivedGatekeeperAddress) {
		return nil, errf(CodeInvalidFeatureAccount, "gatekeeper PDA mismatch: expected %s, got %s", expectedGK, p.DerivedGatekeeperAddress)
	}

	if err := e.Deps.Gateway.AddGatekeeper(p.Authority, p.DerivedGatekeeperAddress, p.Authority); err != nil {
		return nil, errf(CodeIssueError, "add_gatekeeper: %v", err)
	}

	if p.Properties.ExpireOnUse {
		if err := e.Deps.Gateway.AddFeatureToNetwork(p.Authority, p.FeatureAccountAddress); err != nil {
			return nil, errf(CodeIssueError, "add_feature_to_network: %v", err)
		}
	}

	data, err := derived.Marshal()
	if err != nil {
		return nil, err
	}
	if err := e.Deps.Store.Put(&AccountInfo{
		Key:      p.DerivedPassAddress,
		Owner:    e.Deps.ProgramID,
		Data:     data,
		IsWritable: true,
	}); err != nil {
		return nil, err
	}

	return derived, nil
}

// IssueOrRefreshParams are the shared arguments to issue and refresh.
type IssueOrRefreshParams struct {
	DerivedPass       *DerivedPass
	Recipient         solana.PublicKey
	GatewayToken      solana.PublicKey // target account address
	GatekeeperAccount solana.PublicKey
	RemainingAccounts []solana.PublicKey
	FeeBumps          []uint8
}

// Issue validates the holder's component passes, settles fees, and mints a
// fresh gateway token on the derived network. See spec.md §4.7.
func (e *Engine) Issue(p IssueOrRefreshParams) (uint64, error) {
	tokenInfo, err := e.Deps.Store.Get(p.GatewayToken)
	if err != nil {
		return 0, errf(CodeNonEmptyAccount, "gateway token target: %v", err)
	}
	if err := RequireEmpty(tokenInfo, e.Deps.SystemProgramID); err != nil {
		return 0, err
	}

	_, paid, err := e.validateAndSettle(p, false)
	if err != nil {
		return 0, err
	}

	gatekeeperSeeds := [][]byte{GatekeeperSeed, p.DerivedPass.Authority[:], {p.DerivedPass.GatekeeperBump}}
	var expireTime *int64
	if p.DerivedPass.Properties.ExpireDuration != nil {
		t := e.Deps.Now() + *p.DerivedPass.Properties.ExpireDuration
		expireTime = &t
	}

	derivedGK, err := DerivedGatekeeperAddress(e.Deps.ProgramID, p.DerivedPass.Authority, p.DerivedPass.GatekeeperBump)
	if err != nil {
		return 0, err
	}

	if err := e.Deps.Gateway.IssueVanilla(IssueVanillaParams{
		Payer:             p.Recipient,
		Recipient:         p.Recipient,
		GatewayToken:      p.GatewayToken,
		Gatekeeper:        derivedGK,
		GatekeeperAccount: p.GatekeeperAccount,
		GatekeeperNetwork: derivedPassNetworkID(p),
		ExpireTime:        expireTime,
		SignerSeeds:       gatekeeperSeeds,
	}); err != nil {
		return 0, errf(CodeIssueError, "issue_vanilla: %v", err)
	}

	return paid, nil
}

// Refresh extends an already-issued token's expiry, after the same
// validation and fee-settlement pipeline as Issue but charging
// RefreshAmount and failing fast if the pass disallows refresh. See
// spec.md §4.7.
func (e *Engine) Refresh(p IssueOrRefreshParams) (uint64, error) {
	if p.DerivedPass.Properties.RefreshDisabled {
		return 0, errf(CodeRefreshDisabled, "refresh disabled for this derived pass")
	}
	if p.DerivedPass.Properties.ExpireDuration == nil {
		return 0, errf(CodeMissingExpireTime, "derived pass has no expire_duration configured")
	}

	tokenInfo, err := e.Deps.Store.Get(p.GatewayToken)
	if err != nil {
		return 0, errf(CodeInvalidGatewayToken, "gateway token target: %v", err)
	}
	if !tokenInfo.Owner.Equals(e.Deps.GatewayProgramID) {
		return 0, errf(CodeInvalidGatewayToken, "token %s is not owned by the Gateway program", p.GatewayToken)
	}

	_, paid, err := e.validateAndSettle(p, true)
	if err != nil {
		return 0, err
	}

	derivedGK, err := DerivedGatekeeperAddress(e.Deps.ProgramID, p.DerivedPass.Authority, p.DerivedPass.GatekeeperBump)
	if err != nil {
		return 0, err
	}
	gatekeeperSeeds := [][]byte{GatekeeperSeed, p.DerivedPass.Authority[:], {p.DerivedPass.GatekeeperBump}}
	expireTime := e.Deps.Now() + *p.DerivedPass.Properties.ExpireDuration

	if err := e.Deps.Gateway.UpdateExpiry(UpdateExpiryParams{
		GatewayToken: p.GatewayToken,
		Gatekeeper:   derivedGK,
		ExpireTime:   expireTime,
		SignerSeeds:  gatekeeperSeeds,
	}); err != nil {
		return 0, errf(CodeRefreshError, "update_expiry: %v", err)
	}

	return paid, nil
}

// validateAndSettle runs C3 (parse), C4 (validate) and C5 (settle) in
// order, as required by every issue/refresh call (spec.md §4.7).
func (e *Engine) validateAndSettle(p IssueOrRefreshParams, refresh bool) ([]ComponentPassBundle, uint64, error) {
	if len(p.FeeBumps)*3 != len(p.RemainingAccounts) {
		return nil, 0, errf(CodeIncorrectFeeBumpCount, "fee_bumps*3 (%d) != remaining_accounts (%d)", len(p.FeeBumps)*3, len(p.RemainingAccounts))
	}

	bundles, err := ParseComponentPasses(e.Deps, p.RemainingAccounts, p.FeeBumps)
	if err != nil {
		return nil, 0, err
	}

	if err := ValidateComponentPasses(e.Deps, bundles, p.DerivedPass.SourceGKNs, p.Recipient); err != nil {
		return nil, 0, err
	}

	paid, err := PayGatekeepers(e.Deps, p.Recipient, bundles, refresh)
	if err != nil {
		return nil, 0, err
	}

	return bundles, paid, nil
}

// derivedPassNetworkID is the gatekeeper-network identity tokens are issued
// under: the derived pass's own authority key (spec.md §3, "authority ...
// also used as the gatekeeper-network identity of tokens issued under it").
func derivedPassNetworkID(p IssueOrRefreshParams) solana.PublicKey {
	return p.DerivedPass.Authority
}
