// Package gatewayderive provides a fixture/builder test harness for the
// internal/core/gatewayderive engine: an in-memory stand-in for the host
// VM's account set and for the external Gateway program, so engine tests
// never need a real cluster.
package gatewayderive

import (
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"

	"github.com/civicteam/gateway-derive/internal/core/gatewayderive"
)

// MemoryAccountStore is an in-memory gatewayderive.AccountStore, standing in
// for the host VM's account set during a test.
type MemoryAccountStore struct {
	mu       sync.Mutex
	accounts map[solana.PublicKey]*gatewayderive.AccountInfo
}

func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{accounts: make(map[solana.PublicKey]*gatewayderive.AccountInfo)}
}

func (s *MemoryAccountStore) Get(key solana.PublicKey) (*gatewayderive.AccountInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info, ok := s.accounts[key]
	if !ok {
		// An absent account behaves like a fresh system-owned, empty,
		// unfunded account - the default state of any Solana address.
		return &gatewayderive.AccountInfo{Key: key, Owner: solana.SystemProgramID}, nil
	}
	clone := *info
	clone.Data = append([]byte(nil), info.Data...)
	return &clone, nil
}

func (s *MemoryAccountStore) Put(info *gatewayderive.AccountInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *info
	clone.Data = append([]byte(nil), info.Data...)
	s.accounts[info.Key] = &clone
	return nil
}

func (s *MemoryAccountStore) Transfer(from, to solana.PublicKey, lamports uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.accounts[from]
	if !ok || src.Lamports < lamports {
		return fmt.Errorf("insufficient funds in %s", from)
	}
	dst, ok := s.accounts[to]
	if !ok {
		dst = &gatewayderive.AccountInfo{Key: to, Owner: solana.SystemProgramID}
		s.accounts[to] = dst
	}
	src.Lamports -= lamports
	dst.Lamports += lamports
	return nil
}

func (s *MemoryAccountStore) Close(key, recipient solana.PublicKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[key]
	if !ok {
		return fmt.Errorf("account %s not found", key)
	}
	dst, ok := s.accounts[recipient]
	if !ok {
		dst = &gatewayderive.AccountInfo{Key: recipient, Owner: solana.SystemProgramID}
		s.accounts[recipient] = dst
	}
	dst.Lamports += acc.Lamports
	delete(s.accounts, key)
	return nil
}

// Fund credits key with lamports, creating a system-owned account if needed.
func (s *MemoryAccountStore) Fund(key solana.PublicKey, lamports uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[key]
	if !ok {
		acc = &gatewayderive.AccountInfo{Key: key, Owner: solana.SystemProgramID}
		s.accounts[key] = acc
	}
	acc.Lamports += lamports
}

// Balance returns an account's current lamport balance.
func (s *MemoryAccountStore) Balance(key solana.PublicKey) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if acc, ok := s.accounts[key]; ok {
		return acc.Lamports
	}
	return 0
}
