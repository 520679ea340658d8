package gatewayderive

import "fmt"

// Code identifies one of the closed set of failure reasons this program can
// surface. Numbering is stable: callers may switch on Code across versions.
type Code int

const (
	CodeMissingComponentPass Code = iota + 1
	CodeInvalidComponentPass
	CodeIssueError
	CodeRefreshError
	CodeRefreshDisabled
	CodeNonEmptyAccount
	CodeGatekeeperMismatch
	CodeInvalidFeeAccount
	CodePaymentOverflow
	CodePaymentUnderflow
	CodeIncorrectFeeBumpCount
	CodeInvalidFeatureAccount
	CodeMissingExpireTime
	CodeInvalidGatewayToken
	CodeUnknownFeeType
)

var codeNames = map[Code]string{
	CodeMissingComponentPass: "MissingComponentPass",
	CodeInvalidComponentPass: "InvalidComponentPass",
	CodeIssueError:           "IssueError",
	CodeRefreshError:         "RefreshError",
	CodeRefreshDisabled:      "RefreshDisabled",
	CodeNonEmptyAccount:      "NonEmptyAccount",
	CodeGatekeeperMismatch:   "GatekeeperMismatch",
	CodeInvalidFeeAccount:    "InvalidFeeAccount",
	CodePaymentOverflow:      "PaymentOverflow",
	CodePaymentUnderflow:     "PaymentUnderflow",
	CodeIncorrectFeeBumpCount: "IncorrectFeeBumpCount",
	CodeInvalidFeatureAccount: "InvalidFeatureAccount",
	CodeMissingExpireTime:     "MissingExpireTime",
	CodeInvalidGatewayToken:   "InvalidGatewayToken",
	CodeUnknownFeeType:        "UnknownFeeType",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// ProgramError is the single error type returned across every entrypoint.
// The host rolls back all account mutations on any ProgramError, matching
// the transactional all-or-nothing semantics described in spec.md §5/§7.
type ProgramError struct {
	Code Code
	Msg  string
}

func (e *ProgramError) Error() string {
	if e.Msg == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func errf(code Code, format string, args ...any) *ProgramError {
	return &ProgramError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the Code from an error produced by this package, returning
// false if err is nil or not a *ProgramError.
func CodeOf(err error) (Code, bool) {
	pe, ok := err.(*ProgramError)
	if !ok || pe == nil {
		return 0, false
	}
	return pe.Code, true
}
