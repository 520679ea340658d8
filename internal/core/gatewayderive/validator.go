package gatewayderive

import "github.com/gagliardetto/solana-go"

// ValidateComponentPasses checks that each required source network has one
// matching, live token held by expectedOwner, per spec.md §4.4. The match
// is by network presence, not position: a duplicated network with another
// omitted is a MissingComponentPass for the omitted one, not a mismatch
// (spec.md §8, "Boundary behaviors").
func ValidateComponentPasses(deps *Deps, bundles []ComponentPassBundle, sourceGKNs []solana.PublicKey, expectedOwner solana.PublicKey) error {
	for _, network := range sourceGKNs {
		bundle, ok := findComponentForNetwork(bundles, network)
		if !ok {
			return errf(CodeMissingComponentPass, "no component pass for network %s", network)
		}
		if err := verifyComponent(deps, bundle, expectedOwner, network); err != nil {
			return err
		}
	}
	return nil
}

func findComponentForNetwork(bundles []ComponentPassBundle, network solana.PublicKey) (*ComponentPassBundle, bool) {
	for i := range bundles {
		if bundles[i].Token.GatekeeperNetwork.Equals(network) {
			return &bundles[i], true
		}
	}
	return nil, false
}

func verifyComponent(deps *Deps, bundle *ComponentPassBundle, expectedOwner, expectedNetwork solana.PublicKey) error {
	if err := deps.Verifier.VerifyGatewayToken(bundle.Token, expectedOwner, expectedNetwork, bundle.Balance, nil); err != nil {
		return errf(CodeInvalidComponentPass, "token for network %s: %v", expectedNetwork, err)
	}
	return nil
}
