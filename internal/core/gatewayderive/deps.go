package gatewayderive

import "github.com/gagliardetto/solana-go"

// Deps bundles everything an instruction needs beyond its own arguments:
// the accounts it will read/write, the external Gateway program's token
// verifier and CPI surface, and a clock for expiry math. Deps itself holds
// no per-instruction state; account state lives behind Store, which every
// instruction run through the same Deps shares.
type Deps struct {
	ProgramID        solana.PublicKey
	SystemProgramID  solana.PublicKey
	GatewayProgramID solana.PublicKey
	Store           AccountStore
	Verifier        GatewayVerifier
	Gateway         GatewayProgramClient
	// Now returns the current unix time in seconds, standing in for the
	// host VM's clock sysvar.
	Now func() int64
}
