package gatewayderive

import "github.com/gagliardetto/solana-go"

// AccountInfo is this package's view of a single host-VM account: enough of
// Solana's AccountInfo to validate ownership/emptiness and move lamports.
type AccountInfo struct {
	Key        solana.PublicKey
	Owner      solana.PublicKey
	Lamports   uint64
	Data       []byte
	IsSigner   bool
	IsWritable bool
}

func (a *AccountInfo) empty() bool {
	return a == nil || len(a.Data) == 0
}

// AccountStore is the program's view of ledger state: every account this
// package reads or writes during an instruction goes through it. During
// issue/refresh the DerivedPass and Fee accounts are only read, while fee
// lamports move through Transfer; initialize/create_fee/update_fee write
// accounts, and remove_fee closes one.
type AccountStore interface {
	Get(key solana.PublicKey) (*AccountInfo, error)
	Put(info *AccountInfo) error
	// Transfer moves lamports from one account to another, both of which
	// must already exist in the store. Implementations must make this
	// atomic with respect to the rest of the instruction (see spec.md §5).
	Transfer(from, to solana.PublicKey, lamports uint64) error
	// Close removes an account, crediting its lamports to recipient.
	Close(key, recipient solana.PublicKey) error
}

// ErrAccountNotFound is an InvalidComponentPass error for an absent account.
// None of this repository's AccountStore implementations return it: their
// Get returns an empty, unfunded, system-owned account for an absent key.
// Callers translate Get errors into whichever Code applies at that call
// site (InvalidComponentPass, InvalidFeeAccount, etc.).
var ErrAccountNotFound = errf(CodeInvalidComponentPass, "account not found")

// RequireEmpty enforces the "empty + system-owned" precondition (spec.md
// §4.2) used on mutable-target accounts before they are created: the
// derived-gatekeeper PDA and gatekeeper-account targets during initialize,
// and the gateway-token target during issue.
func RequireEmpty(info *AccountInfo, systemProgramID solana.PublicKey) error {
	if info == nil {
		return errf(CodeNonEmptyAccount, "account missing")
	}
	if !info.empty() {
		return errf(CodeNonEmptyAccount, "account %s has data", info.Key)
	}
	if !info.Owner.Equals(systemProgramID) {
		return errf(CodeNonEmptyAccount, "account %s not system-owned", info.Key)
	}
	return nil
}
