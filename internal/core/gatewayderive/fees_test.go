package gatewayderive

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestAggregateFeesMergesPerGatekeeper(t *testing.T) {
	gk1 := solana.NewWallet().PublicKey()
	gk2 := solana.NewWallet().PublicKey()

	fee1, err := NewFee(FeeTypeIssuerOnly, 0, 100, 10, nil)
	require.NoError(t, err)
	fee2, err := NewFee(FeeTypeIssuerOnly, 0, 200, 20, nil)
	require.NoError(t, err)

	bundles := []ComponentPassBundle{
		{Gatekeeper: gk1, Fee: fee1},
		{Gatekeeper: gk2, Fee: fee2},
		{Gatekeeper: gk1, Fee: fee2}, // same gatekeeper again, different fee record
	}

	fees, err := aggregateFees(bundles, false)
	require.NoError(t, err)
	require.Len(t, fees, 2)
	require.Equal(t, gk1, fees[0].gatekeeper) // first-seen order preserved
	require.Equal(t, uint64(300), fees[0].amount)
	require.Equal(t, gk2, fees[1].gatekeeper)
	require.Equal(t, uint64(200), fees[1].amount)
}

func TestAggregateFeesNilFeeRecordIsZero(t *testing.T) {
	gk := solana.NewWallet().PublicKey()
	fees, err := aggregateFees([]ComponentPassBundle{{Gatekeeper: gk, Fee: nil}}, false)
	require.NoError(t, err)
	require.Len(t, fees, 1)
	require.Equal(t, uint64(0), fees[0].amount)
}

func TestAggregateFeesOverflow(t *testing.T) {
	gk := solana.NewWallet().PublicKey()
	fee, err := NewFee(FeeTypeIssuerOnly, 0, ^uint64(0), 0, nil)
	require.NoError(t, err)
	bundles := []ComponentPassBundle{
		{Gatekeeper: gk, Fee: fee},
		{Gatekeeper: gk, Fee: fee},
	}
	_, err = aggregateFees(bundles, false)
	require.Error(t, err)
	code, ok := CodeOf(err)
	require.True(t, ok)
	require.Equal(t, CodePaymentOverflow, code)
}

func TestPayGatekeepersTransfersFromRecipient(t *testing.T) {
	store := newTestStore()
	recipient := solana.NewWallet().PublicKey()
	gk := solana.NewWallet().PublicKey()
	store.fund(recipient, 1_000)
	store.fund(gk, 0)

	fee, err := NewFee(FeeTypeIssuerOnly, 0, 300, 0, nil)
	require.NoError(t, err)
	bundles := []ComponentPassBundle{{Gatekeeper: gk, Fee: fee}}

	deps := &Deps{Store: store}
	paid, err := PayGatekeepers(deps, recipient, bundles, false)
	require.NoError(t, err)
	require.Equal(t, uint64(300), paid)
	require.Equal(t, uint64(700), store.accounts[recipient].Lamports)
	require.Equal(t, uint64(300), store.accounts[gk].Lamports)
}

func TestPayGatekeepersInsufficientFunds(t *testing.T) {
	store := newTestStore()
	recipient := solana.NewWallet().PublicKey()
	gk := solana.NewWallet().PublicKey()
	store.fund(recipient, 10)
	store.fund(gk, 0)

	fee, err := NewFee(FeeTypeIssuerOnly, 0, 300, 0, nil)
	require.NoError(t, err)
	bundles := []ComponentPassBundle{{Gatekeeper: gk, Fee: fee}}

	deps := &Deps{Store: store}
	_, err = PayGatekeepers(deps, recipient, bundles, false)
	require.Error(t, err)
	code, ok := CodeOf(err)
	require.True(t, ok)
	require.Equal(t, CodePaymentUnderflow, code)
}

// testStore is a minimal in-package AccountStore fake, kept separate from
// internal/testing/gatewayderive's MemoryAccountStore to avoid an import
// cycle (that package imports this one).
type testStore struct {
	accounts map[solana.PublicKey]*AccountInfo
}

func newTestStore() *testStore {
	return &testStore{accounts: make(map[solana.PublicKey]*AccountInfo)}
}

func (s *testStore) fund(key solana.PublicKey, lamports uint64) {
	s.accounts[key] = &AccountInfo{Key: key, Lamports: lamports}
}

func (s *testStore) Get(key solana.PublicKey) (*AccountInfo, error) {
	if a, ok := s.accounts[key]; ok {
		return a, nil
	}
	return &AccountInfo{Key: key}, nil
}

func (s *testStore) Put(info *AccountInfo) error {
	s.accounts[info.Key] = info
	return nil
}

func (s *testStore) Transfer(from, to solana.PublicKey, lamports uint64) error {
	src, ok := s.accounts[from]
	if !ok || src.Lamports < lamports {
		return errf(CodePaymentUnderflow, "insufficient funds")
	}
	dst, ok := s.accounts[to]
	if !ok {
		dst = &AccountInfo{Key: to}
		s.accounts[to] = dst
	}
	src.Lamports -= lamports
	dst.Lamports += lamports
	return nil
}

func (s *testStore) Close(key, recipient solana.PublicKey) error {
	acc, ok := s.accounts[key]
	if !ok {
		return errf(CodeInvalidFeeAccount, "not found")
	}
	dst, ok := s.accounts[recipient]
	if !ok {
		dst = &AccountInfo{Key: recipient}
		s.accounts[recipient] = dst
	}
	dst.Lamports += acc.Lamports
	delete(s.accounts, key)
	return nil
}
