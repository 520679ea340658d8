package gatewayderive

import "github.com/gagliardetto/solana-go"

// GatewayProgramClient is this program's CPI surface onto the underlying
// Gateway program (out of scope, spec.md §1/§4.6). Each method corresponds
// to one wrapper in spec.md §4.6's table; callers map any returned error to
// IssueError or RefreshError as that table specifies — the client itself
// never needs to know which local Code applies.
//
// signerSeeds, where present, is the derived-gatekeeper PDA's signer seeds
// ([][]byte{GatekeeperSeed, authority, {bump}}); nil means the instruction
// needs no PDA signature (the payer/recipient signs natively instead).
type GatewayProgramClient interface {
	AddGatekeeper(payer, gatekeeper, gatekeeperNetwork solana.PublicKey) error
	AddFeatureToNetwork(gatekeeperNetwork, featureAccount solana.PublicKey) error
	IssueVanilla(params IssueVanillaParams) error
	UpdateExpiry(params UpdateExpiryParams) error
}

// IssueVanillaParams mirrors the original gateway_client.rs
// GatewayTokenIssueParams, trimmed to what this program's Go model needs.
type IssueVanillaParams struct {
	Payer             solana.PublicKey
	Recipient         solana.PublicKey
	GatewayToken      solana.PublicKey
	Gatekeeper        solana.PublicKey
	GatekeeperAccount solana.PublicKey
	GatekeeperNetwork solana.PublicKey
	ExpireTime        *int64 // absolute unix seconds, nil for no expiry
	SignerSeeds       [][]byte
}

// UpdateExpiryParams extends an already-issued token's absolute expiry.
type UpdateExpiryParams struct {
	GatewayToken solana.PublicKey
	Gatekeeper   solana.PublicKey
	ExpireTime   int64
	SignerSeeds  [][]byte
}

// CPIInvoker performs the actual cross-program invocation. In the real
// runtime this is invoke/invoke_signed; in this repository's harness and
// tests it is backed by an in-memory fake of the Gateway program (see
// internal/testing/gatewayderive).
type CPIInvoker interface {
	Invoke(programID solana.PublicKey, ix Instruction, signerSeeds [][]byte) error
}

// Instruction is a minimal CPI instruction descriptor: enough to identify
// the target program, the accounts it touches, and an opaque data payload.
// The real wire format of add_gatekeeper/issue_vanilla/update_expiry/
// add_feature_to_network belongs to the Gateway program and is not
// redefined here (spec.md §6, "Bit-exact external calls").
type Instruction struct {
	Accounts []solana.AccountMeta
	Data     []byte
}

// nativeGatewayClient is the production GatewayProgramClient: it builds an
// Instruction for each CPI and hands it to a CPIInvoker. Instruction
// encoding itself is left to the caller-supplied encode function so this
// package never has to guess the Gateway program's exact wire format.
type nativeGatewayClient struct {
	gatewayProgramID solana.PublicKey
	invoker          CPIInvoker
	encode           GatewayEncoder
}

// GatewayEncoder produces the opaque instruction data for each of the four
// consumed Gateway-program instructions. A real deployment supplies one
// backed by the Gateway program's published IDL/instruction set.
type GatewayEncoder interface {
	AddGatekeeper(gatekeeper, gatekeeperNetwork solana.PublicKey) []byte
	AddFeatureToNetwork(gatekeeperNetwork, featureAccount solana.PublicKey) []byte
	IssueVanilla(params IssueVanillaParams) []byte
	UpdateExpiry(params UpdateExpiryParams) []byte
}

// NewNativeGatewayClient builds a GatewayProgramClient that issues real CPIs
// through invoker, encoding instruction data with encode.
func NewNativeGatewayClient(gatewayProgramID solana.PublicKey, invoker CPIInvoker, encode GatewayEncoder) GatewayProgramClient {
	return &nativeGatewayClient{gatewayProgramID: gatewayProgramID, invoker: invoker, encode: encode}
}

func (c *nativeGatewayClient) AddGatekeeper(payer, gatekeeper, gatekeeperNetwork solana.PublicKey) error {
	ix := Instruction{
		Accounts: []solana.AccountMeta{
			{PublicKey: payer, IsSigner: true, IsWritable: true},
			{PublicKey: gatekeeper, IsSigner: false, IsWritable: true},
			{PublicKey: gatekeeperNetwork, IsSigner: false, IsWritable: false},
		},
		Data: c.encode.AddGatekeeper(gatekeeper, gatekeeperNetwork),
	}
	return c.invoker.Invoke(c.gatewayProgramID, ix, nil)
}

func (c *nativeGatewayClient) AddFeatureToNetwork(gatekeeperNetwork, featureAccount solana.PublicKey) error {
	ix := Instruction{
		Accounts: []solana.AccountMeta{
			{PublicKey: gatekeeperNetwork, IsSigner: false, IsWritable: false},
			{PublicKey: featureAccount, IsSigner: false, IsWritable: true},
		},
		Data: c.encode.AddFeatureToNetwork(gatekeeperNetwork, featureAccount),
	}
	return c.invoker.Invoke(c.gatewayProgramID, ix, nil)
}

func (c *nativeGatewayClient) IssueVanilla(params IssueVanillaParams) error {
	ix := Instruction{
		Accounts: []solana.AccountMeta{
			{PublicKey: params.Payer, IsSigner: true, IsWritable: true},
			{PublicKey: params.GatewayToken, IsSigner: false, IsWritable: true},
			{PublicKey: params.Recipient, IsSigner: true, IsWritable: false},
			{PublicKey: params.GatekeeperAccount, IsSigner: false, IsWritable: false},
			{PublicKey: params.Gatekeeper, IsSigner: true, IsWritable: false},
			{PublicKey: params.GatekeeperNetwork, IsSigner: false, IsWritable: false},
		},
		Data: c.encode.IssueVanilla(params),
	}
	return c.invoker.Invoke(c.gatewayProgramID, ix, params.SignerSeeds)
}

func (c *nativeGatewayClient) UpdateExpiry(params UpdateExpiryParams) error {
	ix := Instruction{
		Accounts: []solana.AccountMeta{
			{PublicKey: params.GatewayToken, IsSigner: false, IsWritable: true},
			{PublicKey: params.Gatekeeper, IsSigner: true, IsWritable: false},
		},
		Data: c.encode.UpdateExpiry(params),
	}
	return c.invoker.Invoke(c.gatewayProgramID, ix, params.SignerSeeds)
}
