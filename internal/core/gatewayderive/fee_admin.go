package gatewayderive

import "github.com/gagliardetto/solana-go"

// FeeAdminParams are the shared arguments to create_fee and update_fee.
type FeeAdminParams struct {
	Authority         solana.PublicKey // receives the lamports on remove_fee; not compared with Gatekeeper, and no signature is checked here
	Gatekeeper        solana.PublicKey
	GatekeeperNetwork solana.PublicKey
	FeeAddress        solana.PublicKey
	Bump              uint8
	FeeType           FeeType
	Percentage        uint8
	IssueAmount       uint64
	RefreshAmount     uint64
	Mint              *solana.PublicKey
}

func (e *Engine) authenticateFeeAddress(p FeeAdminParams) error {
	expected, err := FeeAddress(e.Deps.ProgramID, p.Gatekeeper, p.GatekeeperNetwork, p.Bump)
	if err != nil {
		return err
	}
	if !expected.Equals(p.FeeAddress) {
		return errf(CodeInvalidFeeAccount, "fee address mismatch: expected %s, got %s", expected, p.FeeAddress)
	}
	return nil
}

// CreateFee initializes a Fee record at its PDA. See spec.md §4.7.
func (e *Engine) CreateFee(p FeeAdminParams) (*Fee, error) {
	if err := e.authenticateFeeAddress(p); err != nil {
		return nil, err
	}
	fee, err := NewFee(p.FeeType, p.Percentage, p.IssueAmount, p.RefreshAmount, p.Mint)
	if err != nil {
		return nil, err
	}
	data, err := fee.Marshal()
	if err != nil {
		return nil, err
	}
	if err := e.Deps.Store.Put(&AccountInfo{
		Key:        p.FeeAddress,
		Owner:      e.Deps.ProgramID,
		Data:       data,
		IsWritable: true,
	}); err != nil {
		return nil, err
	}
	return fee, nil
}

// UpdateFee mutates an existing Fee record in place. See spec.md §4.7.
func (e *Engine) UpdateFee(p FeeAdminParams) (*Fee, error) {
	if err := e.authenticateFeeAddress(p); err != nil {
		return nil, err
	}
	info, err := e.Deps.Store.Get(p.FeeAddress)
	if err != nil {
		return nil, errf(CodeInvalidFeeAccount, "fee account %s: %v", p.FeeAddress, err)
	}
	if !info.Owner.Equals(e.Deps.ProgramID) {
		return nil, errf(CodeInvalidFeeAccount, "fee account %s not owned by this program", p.FeeAddress)
	}
	fee, err := NewFee(p.FeeType, p.Percentage, p.IssueAmount, p.RefreshAmount, p.Mint)
	if err != nil {
		return nil, err
	}
	data, err := fee.Marshal()
	if err != nil {
		return nil, err
	}
	info.Data = data
	if err := e.Deps.Store.Put(info); err != nil {
		return nil, err
	}
	return fee, nil
}

// RemoveFee closes a Fee record, returning its rent lamports to authority.
// See spec.md §4.7. spec.md §9 leaves "should remove_fee require the
// absence of outstanding derived passes referencing the gatekeeper"
// unresolved and notes the source allows unconditional close; this program
// follows that and closes unconditionally (see DESIGN.md).
func (e *Engine) RemoveFee(p FeeAdminParams) error {
	if err := e.authenticateFeeAddress(p); err != nil {
		return err
	}
	info, err := e.Deps.Store.Get(p.FeeAddress)
	if err != nil {
		return errf(CodeInvalidFeeAccount, "fee account %s: %v", p.FeeAddress, err)
	}
	if !info.Owner.Equals(e.Deps.ProgramID) {
		return errf(CodeInvalidFeeAccount, "fee account %s not owned by this program", p.FeeAddress)
	}
	return e.Deps.Store.Close(p.FeeAddress, p.Authority)
}
