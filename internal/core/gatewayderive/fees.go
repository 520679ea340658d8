package gatewayderive

import (
	"log"

	"github.com/gagliardetto/solana-go"
)

// gatekeeperFee pairs a gatekeeper's account key with the amount owed to it.
type gatekeeperFee struct {
	gatekeeper solana.PublicKey
	amount     uint64
}

// aggregateFees folds the per-component fees into one amount per gatekeeper,
// preserving first-seen order (spec.md §4.5). refresh selects whether
// IssueAmount or RefreshAmount is charged.
func aggregateFees(bundles []ComponentPassBundle, refresh bool) ([]gatekeeperFee, error) {
	order := make([]solana.PublicKey, 0, len(bundles))
	totals := make(map[solana.PublicKey]uint64, len(bundles))

	for _, b := range bundles {
		if _, seen := totals[b.Gatekeeper]; !seen {
			totals[b.Gatekeeper] = 0
			order = append(order, b.Gatekeeper)
		}
		amount := b.Fee.AmountForAction(refresh)
		if amount == 0 {
			continue
		}
		sum := totals[b.Gatekeeper]
		newSum := sum + amount
		if newSum < sum {
			return nil, errf(CodePaymentOverflow, "fee total for gatekeeper %s overflowed", b.Gatekeeper)
		}
		totals[b.Gatekeeper] = newSum
	}

	result := make([]gatekeeperFee, 0, len(order))
	for _, gk := range order {
		result = append(result, gatekeeperFee{gatekeeper: gk, amount: totals[gk]})
	}
	return result, nil
}

// PayGatekeepers aggregates fees per gatekeeper and disburses them via
// native transfer from recipient. Returns the total amount disbursed across
// all gatekeepers, for observability (spec.md §4.5/§8).
func PayGatekeepers(deps *Deps, recipient solana.PublicKey, bundles []ComponentPassBundle, refresh bool) (uint64, error) {
	fees, err := aggregateFees(bundles, refresh)
	if err != nil {
		return 0, err
	}

	var total uint64
	for _, f := range fees {
		if f.amount == 0 {
			continue
		}
		newTotal := total + f.amount
		if newTotal < total {
			return 0, errf(CodePaymentOverflow, "total disbursement overflowed")
		}
		total = newTotal
	}

	for _, f := range fees {
		if f.amount == 0 {
			continue
		}
		log.Printf("gatewayderive: paying %d lamports from %s to %s", f.amount, recipient, f.gatekeeper)
		if err := deps.Store.Transfer(recipient, f.gatekeeper, f.amount); err != nil {
			return 0, errf(CodePaymentUnderflow, "transfer %d lamports from %s to %s: %v", f.amount, recipient, f.gatekeeper, err)
		}
	}

	return total, nil
}
