package gatewayderive

import "github.com/gagliardetto/solana-go"

// The two canonical seed strings, matched byte-for-byte against the deployed
// artifact. Do not re-derive these from other identifiers. See spec.md §4.1
// and design note in §9 ("Seeds as ASCII literals").
var (
	GatekeeperSeed = []byte("gateway_derive_gk_seed") // 22 bytes
	FeeSeed        = []byte("gateway_derive_fee_seed") // 23 bytes
)

// DerivedGatekeeperAddress computes the program-derived gatekeeper signer
// address for a derived pass authority, given its stored bump. The program
// always uses an explicit bump (CreateProgramAddress, no on-chain search);
// see spec.md §4.1.
func DerivedGatekeeperAddress(programID, authority solana.PublicKey, bump uint8) (solana.PublicKey, error) {
	addr, err := solana.CreateProgramAddress([][]byte{
		GatekeeperSeed,
		authority[:],
		{bump},
	}, programID)
	if err != nil {
		return solana.PublicKey{}, errf(CodeInvalidFeatureAccount, "derive gatekeeper address: %v", err)
	}
	return addr, nil
}

// FindDerivedGatekeeperAddress searches for a valid (address, bump) pair.
// Only used off-chain (by callers constructing a transaction); the program
// itself always validates a caller-supplied bump, never searches one.
func FindDerivedGatekeeperAddress(programID, authority solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		GatekeeperSeed,
		authority[:],
	}, programID)
}

// FeeAddress computes the program-derived fee-record address for a
// (gatekeeper, gatekeeper_network) pair and an explicit bump. See spec.md
// §4.1. A mismatch between the supplied bump and the caller-presented
// account is always InvalidFeeAccount, never silently corrected.
func FeeAddress(programID, gatekeeper, gatekeeperNetwork solana.PublicKey, bump uint8) (solana.PublicKey, error) {
	addr, err := solana.CreateProgramAddress([][]byte{
		FeeSeed,
		gatekeeper[:],
		gatekeeperNetwork[:],
		{bump},
	}, programID)
	if err != nil {
		return solana.PublicKey{}, errf(CodeInvalidFeeAccount, "derive fee address: %v", err)
	}
	return addr, nil
}

// FindFeeAddress searches for a valid (address, bump) pair. Off-chain use
// only, mirroring FindDerivedGatekeeperAddress above.
func FindFeeAddress(programID, gatekeeper, gatekeeperNetwork solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		FeeSeed,
		gatekeeper[:],
		gatekeeperNetwork[:],
	}, programID)
}
