// Package methods implements the JSON-RPC method handlers gwderived
// exposes, one function per entrypoint in spec.md §4.7, each translating
// wire-friendly request/response structs to and from the gatewayderive
// engine's native solana.PublicKey/uint64 types.
package methods

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/civicteam/gateway-derive/internal/core/gatewayderive"
	"github.com/civicteam/gateway-derive/internal/server/utils"
)

func parsePubkey(s string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid public key %q: %w", s, err)
	}
	return key, nil
}

func parsePubkeys(ss []string) ([]solana.PublicKey, error) {
	keys := make([]solana.PublicKey, len(ss))
	for i, s := range ss {
		key, err := parsePubkey(s)
		if err != nil {
			return nil, err
		}
		keys[i] = key
	}
	return keys, nil
}

// InitializeRequest is the wire form of InitializeParams.
type InitializeRequest struct {
	Authority                string   `json:"authority"`
	SourceGKNs               []string `json:"source_gkns"`
	Size                     uint8    `json:"size"`
	GatekeeperBump           uint8    `json:"gatekeeper_bump"`
	ExpireDuration           *int64   `json:"expire_duration,omitempty"`
	ExpireOnUse              bool     `json:"expire_on_use"`
	RefreshDisabled          bool     `json:"refresh_disabled"`
	DerivedPassAddress       string   `json:"derived_pass_address"`
	DerivedGatekeeperAddress string   `json:"derived_gatekeeper_address"`
	GatekeeperAccountAddress string   `json:"gatekeeper_account_address"`
	FeatureAccountAddress    string   `json:"feature_account_address,omitempty"`
}

type InitializeResponse struct {
	DerivedPassAddress string `json:"derived_pass_address"`
	Authority          string `json:"authority"`
}

// HandleInitialize registers a new derived pass. See spec.md §4.7.
func HandleInitialize(engine *gatewayderive.Engine, params interface{}) (interface{}, error) {
	var req InitializeRequest
	if err := utils.ConvertParams(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params for initialize: %w", err)
	}

	authority, err := parsePubkey(req.Authority)
	if err != nil {
		return nil, err
	}
	sourceGKNs, err := parsePubkeys(req.SourceGKNs)
	if err != nil {
		return nil, err
	}
	derivedPassAddr, err := parsePubkey(req.DerivedPassAddress)
	if err != nil {
		return nil, err
	}
	derivedGKAddr, err := parsePubkey(req.DerivedGatekeeperAddress)
	if err != nil {
		return nil, err
	}
	gkAccountAddr, err := parsePubkey(req.GatekeeperAccountAddress)
	if err != nil {
		return nil, err
	}
	var featureAddr solana.PublicKey
	if req.FeatureAccountAddress != "" {
		featureAddr, err = parsePubkey(req.FeatureAccountAddress)
		if err != nil {
			return nil, err
		}
	}

	derived, err := engine.Initialize(gatewayderive.InitializeParams{
		Authority:      authority,
		SourceGKNs:     sourceGKNs,
		Size:           req.Size,
		GatekeeperBump: req.GatekeeperBump,
		Properties: gatewayderive.Properties{
			ExpireDuration:  req.ExpireDuration,
			ExpireOnUse:     req.ExpireOnUse,
			RefreshDisabled: req.RefreshDisabled,
		},
		DerivedPassAddress:       derivedPassAddr,
		DerivedGatekeeperAddress: derivedGKAddr,
		GatekeeperAccountAddress: gkAccountAddr,
		FeatureAccountAddress:    featureAddr,
	})
	if err != nil {
		return nil, err
	}

	return InitializeResponse{
		DerivedPassAddress: derivedPassAddr.String(),
		Authority:          derived.Authority.String(),
	}, nil
}

// IssueOrRefreshRequest is the shared wire form of IssueOrRefreshParams.
type IssueOrRefreshRequest struct {
	DerivedPassAddress string   `json:"derived_pass_address"`
	Recipient          string   `json:"recipient"`
	GatewayToken       string   `json:"gateway_token"`
	GatekeeperAccount  string   `json:"gatekeeper_account"`
	RemainingAccounts  []string `json:"remaining_accounts"`
	FeeBumps           []uint8  `json:"fee_bumps"`
}

type PaymentResponse struct {
	TotalPaid uint64 `json:"total_paid"`
}

func loadParams(store gatewayderive.AccountStore, req IssueOrRefreshRequest) (*gatewayderive.DerivedPass, gatewayderive.IssueOrRefreshParams, error) {
	var p gatewayderive.IssueOrRefreshParams

	derivedPassAddr, err := parsePubkey(req.DerivedPassAddress)
	if err != nil {
		return nil, p, err
	}
	info, err := store.Get(derivedPassAddr)
	if err != nil {
		return nil, p, fmt.Errorf("derived pass account: %w", err)
	}
	derived, err := gatewayderive.UnmarshalDerivedPass(info.Data)
	if err != nil {
		return nil, p, fmt.Errorf("decode derived pass: %w", err)
	}

	recipient, err := parsePubkey(req.Recipient)
	if err != nil {
		return nil, p, err
	}
	gatewayToken, err := parsePubkey(req.GatewayToken)
	if err != nil {
		return nil, p, err
	}
	var gatekeeperAccount solana.PublicKey
	if req.GatekeeperAccount != "" {
		gatekeeperAccount, err = parsePubkey(req.GatekeeperAccount)
		if err != nil {
			return nil, p, err
		}
	}
	remaining, err := parsePubkeys(req.RemainingAccounts)
	if err != nil {
		return nil, p, err
	}

	p = gatewayderive.IssueOrRefreshParams{
		DerivedPass:       derived,
		Recipient:         recipient,
		GatewayToken:      gatewayToken,
		GatekeeperAccount: gatekeeperAccount,
		RemainingAccounts: remaining,
		FeeBumps:          req.FeeBumps,
	}
	return derived, p, nil
}

// HandleIssue mints a fresh derived token from a conjunction of component
// passes. See spec.md §4.7.
func HandleIssue(engine *gatewayderive.Engine, params interface{}) (interface{}, error) {
	var req IssueOrRefreshRequest
	if err := utils.ConvertParams(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params for issue: %w", err)
	}
	_, p, err := loadParams(engine.Deps.Store, req)
	if err != nil {
		return nil, err
	}
	paid, err := engine.Issue(p)
	if err != nil {
		return nil, err
	}
	return PaymentResponse{TotalPaid: paid}, nil
}

// HandleRefresh extends an already-issued derived token's expiry. See
// spec.md §4.7.
func HandleRefresh(engine *gatewayderive.Engine, params interface{}) (interface{}, error) {
	var req IssueOrRefreshRequest
	if err := utils.ConvertParams(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params for refresh: %w", err)
	}
	_, p, err := loadParams(engine.Deps.Store, req)
	if err != nil {
		return nil, err
	}
	paid, err := engine.Refresh(p)
	if err != nil {
		return nil, err
	}
	return PaymentResponse{TotalPaid: paid}, nil
}

// FeeAdminRequest is the shared wire form of FeeAdminParams.
type FeeAdminRequest struct {
	Authority         string `json:"authority"`
	Gatekeeper        string `json:"gatekeeper"`
	GatekeeperNetwork string `json:"gatekeeper_network"`
	FeeAddress        string `json:"fee_address"`
	Bump              uint8  `json:"bump"`
	FeeType           uint8  `json:"fee_type"`
	Percentage        uint8  `json:"percentage"`
	IssueAmount       uint64 `json:"issue_amount"`
	RefreshAmount     uint64 `json:"refresh_amount"`
	Mint              string `json:"mint,omitempty"`
}

type FeeResponse struct {
	FeeAddress    string `json:"fee_address"`
	IssueAmount   uint64 `json:"issue_amount"`
	RefreshAmount uint64 `json:"refresh_amount"`
}

func parseFeeAdminParams(req FeeAdminRequest) (gatewayderive.FeeAdminParams, error) {
	var p gatewayderive.FeeAdminParams
	var err error
	if p.Authority, err = parsePubkey(req.Authority); err != nil {
		return p, err
	}
	if p.Gatekeeper, err = parsePubkey(req.Gatekeeper); err != nil {
		return p, err
	}
	if p.GatekeeperNetwork, err = parsePubkey(req.GatekeeperNetwork); err != nil {
		return p, err
	}
	if p.FeeAddress, err = parsePubkey(req.FeeAddress); err != nil {
		return p, err
	}
	if req.Mint != "" {
		mint, err := parsePubkey(req.Mint)
		if err != nil {
			return p, err
		}
		p.Mint = &mint
	}
	p.Bump = req.Bump
	p.FeeType = gatewayderive.FeeType(req.FeeType)
	p.Percentage = req.Percentage
	p.IssueAmount = req.IssueAmount
	p.RefreshAmount = req.RefreshAmount
	return p, nil
}

// HandleCreateFee initializes a Fee record. See spec.md §4.7.
func HandleCreateFee(engine *gatewayderive.Engine, params interface{}) (interface{}, error) {
	var req FeeAdminRequest
	if err := utils.ConvertParams(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params for create_fee: %w", err)
	}
	p, err := parseFeeAdminParams(req)
	if err != nil {
		return nil, err
	}
	fee, err := engine.CreateFee(p)
	if err != nil {
		return nil, err
	}
	return FeeResponse{FeeAddress: p.FeeAddress.String(), IssueAmount: fee.IssueAmount, RefreshAmount: fee.RefreshAmount}, nil
}

// HandleUpdateFee mutates an existing Fee record. See spec.md §4.7.
func HandleUpdateFee(engine *gatewayderive.Engine, params interface{}) (interface{}, error) {
	var req FeeAdminRequest
	if err := utils.ConvertParams(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params for update_fee: %w", err)
	}
	p, err := parseFeeAdminParams(req)
	if err != nil {
		return nil, err
	}
	fee, err := engine.UpdateFee(p)
	if err != nil {
		return nil, err
	}
	return FeeResponse{FeeAddress: p.FeeAddress.String(), IssueAmount: fee.IssueAmount, RefreshAmount: fee.RefreshAmount}, nil
}

// HandleRemoveFee closes a Fee record. See spec.md §4.7.
func HandleRemoveFee(engine *gatewayderive.Engine, params interface{}) (interface{}, error) {
	var req FeeAdminRequest
	if err := utils.ConvertParams(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params for remove_fee: %w", err)
	}
	p, err := parseFeeAdminParams(req)
	if err != nil {
		return nil, err
	}
	if err := engine.RemoveFee(p); err != nil {
		return nil, err
	}
	return map[string]bool{"closed": true}, nil
}
