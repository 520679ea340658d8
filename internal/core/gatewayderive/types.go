package gatewayderive

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// SchemaVersion is the only version this package knows how to read/write.
const SchemaVersion uint8 = 0

// 8-byte discriminators prefixed onto persisted account data, in the style
// of an Anchor account header. Values are arbitrary but stable; they only
// need to disambiguate DerivedPass from Fee on read.
var (
	derivedPassDiscriminator = [8]byte{0xd3, 0x72, 0x70, 0x61, 0x73, 0x73, 0x00, 0x01}
	feeDiscriminator         = [8]byte{0x66, 0x65, 0x65, 0x72, 0x75, 0x6c, 0x65, 0x00}
)

// Properties configures optional derived-pass behavior. See spec.md §3.
type Properties struct {
	// ExpireDuration, when non-nil, is the number of seconds after issuance
	// or refresh that an issued token's absolute expiry is set to.
	ExpireDuration  *int64
	ExpireOnUse     bool
	RefreshDisabled bool
}

// DerivedPass is the persistent configuration of one composite gatekeeper
// network. See spec.md §3 and the wire layout in §6.
type DerivedPass struct {
	Version        uint8
	Authority      solana.PublicKey
	GatekeeperBump uint8
	SourceGKNs     []solana.PublicKey
	Properties     Properties
}

// RequiresNetwork reports whether g is one of the pass's source networks.
func (d *DerivedPass) RequiresNetwork(g solana.PublicKey) bool {
	for _, src := range d.SourceGKNs {
		if src.Equals(g) {
			return true
		}
	}
	return false
}

// Marshal serializes the account including its 8-byte discriminator.
func (d *DerivedPass) Marshal() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(derivedPassDiscriminator[:])
	enc := bin.NewBorshEncoder(buf)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalDerivedPass decodes a DerivedPass account, verifying the
// discriminator prefix first.
func UnmarshalDerivedPass(data []byte) (*DerivedPass, error) {
	if len(data) < 8 || !bytes.Equal(data[:8], derivedPassDiscriminator[:]) {
		return nil, errf(CodeInvalidComponentPass, "bad DerivedPass discriminator")
	}
	d := &DerivedPass{}
	dec := bin.NewBorshDecoder(data[8:])
	if err := dec.Decode(d); err != nil {
		return nil, err
	}
	return d, nil
}

// FeeType enumerates how a Fee record's amounts are applied. Only
// FeeTypeIssuerOnly is currently honored; spec.md §9 leaves unknown variants
// an open question, resolved (DESIGN.md) to fail closed on write.
type FeeType uint8

const (
	FeeTypeIssuerOnly FeeType = 0
)

// Fee is a per-(gatekeeper, gatekeeper-network) pricing rule. See spec.md §3.
type Fee struct {
	Version       uint8
	FeeType       FeeType
	Percentage    uint8
	IssueAmount   uint64
	RefreshAmount uint64
	Mint          *solana.PublicKey
}

// AmountForAction returns the fee amount charged for issuing (refresh=false)
// or refreshing (refresh=true) a derived token. Only FeeTypeIssuerOnly is
// implemented; Percentage is reserved and ignored, per spec.md §3/§9.
func (f *Fee) AmountForAction(refresh bool) uint64 {
	if f == nil {
		return 0
	}
	if refresh {
		return f.RefreshAmount
	}
	return f.IssueAmount
}

// Marshal serializes the account including its 8-byte discriminator.
func (f *Fee) Marshal() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(feeDiscriminator[:])
	enc := bin.NewBorshEncoder(buf)
	if err := enc.Encode(f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalFee decodes a Fee account, verifying the discriminator prefix.
func UnmarshalFee(data []byte) (*Fee, error) {
	if len(data) < 8 || !bytes.Equal(data[:8], feeDiscriminator[:]) {
		return nil, errf(CodeInvalidFeeAccount, "bad Fee discriminator")
	}
	f := &Fee{}
	dec := bin.NewBorshDecoder(data[8:])
	if err := dec.Decode(f); err != nil {
		return nil, err
	}
	return f, nil
}

// NewFee builds a Fee record, rejecting unknown fee types so that older or
// malformed records can never be silently written as something else.
// Resolves the open question in spec.md §9 by failing closed on write.
func NewFee(feeType FeeType, percentage uint8, issueAmount, refreshAmount uint64, mint *solana.PublicKey) (*Fee, error) {
	if feeType != FeeTypeIssuerOnly {
		return nil, errf(CodeUnknownFeeType, "fee_type %d not supported", feeType)
	}
	return &Fee{
		Version:       SchemaVersion,
		FeeType:       feeType,
		Percentage:    percentage,
		IssueAmount:   issueAmount,
		RefreshAmount: refreshAmount,
		Mint:          mint,
	}, nil
}
