package gatewayderive

import (
	"log"

	"github.com/gagliardetto/solana-go"
)

// ComponentPassBundle is the transient per-call triple assembled from the
// variadic remaining-accounts payload during issue/refresh. See spec.md
// §3/§4.3.
type ComponentPassBundle struct {
	Token      *GatewayToken
	Balance    uint64
	Fee        *Fee // nil if no fee rule is defined for this component
	Gatekeeper solana.PublicKey
}

// ParseComponentPasses partitions remainingAccounts into the three parallel
// strides described in spec.md §4.3 and decodes each gateway token / fee
// account. len(remainingAccounts) must equal 3*len(feeBumps), else the result
// is IncorrectFeeBumpCount; Engine.validateAndSettle makes the same check
// before calling. Neither compares N with the derived pass's source-network
// count.
func ParseComponentPasses(deps *Deps, remainingAccounts []solana.PublicKey, feeBumps []uint8) ([]ComponentPassBundle, error) {
	n := len(feeBumps)
	if len(remainingAccounts) != 3*n {
		return nil, errf(CodeIncorrectFeeBumpCount, "expected %d accounts for %d fee bumps, got %d", 3*n, n, len(remainingAccounts))
	}
	log.Printf("gatewayderive: parsing %d component pass accounts", n)

	tokens := remainingAccounts[0:n]
	fees := remainingAccounts[n : 2*n]
	gatekeepers := remainingAccounts[2*n : 3*n]

	bundles := make([]ComponentPassBundle, 0, n)
	for i := 0; i < n; i++ {
		tokenInfo, err := deps.Store.Get(tokens[i])
		if err != nil {
			return nil, errf(CodeInvalidComponentPass, "token account %s: %v", tokens[i], err)
		}
		token, err := deps.Verifier.ParseGatewayToken(tokenInfo.Data)
		if err != nil {
			return nil, errf(CodeInvalidComponentPass, "parse token %s: %v", tokens[i], err)
		}

		fee, err := parseFeeAccount(deps, fees[i], token.IssuingGatekeeper, token.GatekeeperNetwork, feeBumps[i])
		if err != nil {
			return nil, err
		}

		if !gatekeepers[i].Equals(token.IssuingGatekeeper) {
			return nil, errf(CodeGatekeeperMismatch, "position %d: expected gatekeeper %s, got %s", i, token.IssuingGatekeeper, gatekeepers[i])
		}

		bundles = append(bundles, ComponentPassBundle{
			Token:      token,
			Balance:    tokenInfo.Lamports,
			Fee:        fee,
			Gatekeeper: gatekeepers[i],
		})
	}
	return bundles, nil
}

// parseFeeAccount implements the rules in spec.md §4.3 ("parse_fee_account
// rules").
func parseFeeAccount(deps *Deps, candidate solana.PublicKey, gatekeeper, gatekeeperNetwork solana.PublicKey, bump uint8) (*Fee, error) {
	expected, err := FeeAddress(deps.ProgramID, gatekeeper, gatekeeperNetwork, bump)
	if err != nil {
		return nil, err
	}
	if !expected.Equals(candidate) {
		return nil, errf(CodeInvalidFeeAccount, "fee address mismatch: expected %s, got %s", expected, candidate)
	}

	info, err := deps.Store.Get(candidate)
	if err != nil {
		return nil, errf(CodeInvalidFeeAccount, "fee account %s: %v", candidate, err)
	}

	switch {
	case info.Owner.Equals(deps.SystemProgramID):
		if info.Lamports == 0 {
			return nil, nil
		}
		return nil, errf(CodeInvalidFeeAccount, "fee account %s is system-owned with non-zero balance", candidate)
	case info.Owner.Equals(deps.ProgramID):
		return UnmarshalFee(info.Data)
	default:
		return nil, errf(CodeInvalidFeeAccount, "fee account %s has unexpected owner %s", candidate, info.Owner)
	}
}
