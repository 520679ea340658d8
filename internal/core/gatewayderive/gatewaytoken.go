package gatewayderive

import "github.com/gagliardetto/solana-go"

// GatewayToken is the subset of the underlying Gateway program's token
// account this program reads. The token's full layout belongs to that
// program (out of scope, spec.md §1); only the three key fields and State
// are consumed.
type GatewayToken struct {
	GatekeeperNetwork solana.PublicKey
	OwnerWallet       solana.PublicKey
	IssuingGatekeeper solana.PublicKey
	State             GatewayTokenState
}

// GatewayTokenState mirrors the Gateway program's token lifecycle states
// closely enough for this program's liveness check.
type GatewayTokenState uint8

const (
	GatewayTokenStateActive GatewayTokenState = iota
	GatewayTokenStateRevoked
	GatewayTokenStateFrozen
)

// GatewayVerifier is the external Gateway program's token verifier,
// consumed but not reimplemented here (spec.md §1/§4.4). expectedFeature is
// always nil for this program's call sites (spec.md §4.4).
type GatewayVerifier interface {
	ParseGatewayToken(data []byte) (*GatewayToken, error)
	VerifyGatewayToken(token *GatewayToken, expectedOwner, expectedNetwork solana.PublicKey, balance uint64, expectedFeature *solana.PublicKey) error
}
