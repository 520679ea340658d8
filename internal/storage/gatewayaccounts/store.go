// Package gatewayaccounts is a durable gatewayderive.AccountStore, backed by
// the pebble key-value database and fronted by a golang-lru/v2 cache, so
// hot accounts never round-trip to disk within a single instruction.
package gatewayaccounts

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/civicteam/gateway-derive/internal/core/gatewayderive"
	"github.com/civicteam/gateway-derive/internal/storage/database"
	"github.com/civicteam/gateway-derive/internal/storage/database/pebble"
)

// Config controls the front cache's size. A zero Config falls back to a
// sane default.
type Config struct {
	CacheSize int
}

// Store is a gatewayderive.AccountStore persisted in a single pebble
// namespace, named "accounts". Reads check the LRU cache first; writes go
// through to the database and then update the cache, so a restart never
// loses an account but a hot account never round-trips to disk either.
type Store struct {
	db    database.DB
	cache *lru.Cache[solana.PublicKey, *gatewayderive.AccountInfo]
}

// Open opens (or creates) the "accounts" namespace in mgr and wraps it in a
// Store.
func Open(mgr *pebble.Manager, cfg Config) (*Store, error) {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 4096
	}
	db, err := mgr.OpenDB("accounts")
	if err != nil {
		return nil, fmt.Errorf("open accounts database: %w", err)
	}
	cache, err := lru.New[solana.PublicKey, *gatewayderive.AccountInfo](cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, cache: cache}, nil
}

type wireAccount struct {
	Owner      solana.PublicKey
	Lamports   uint64
	Data       []byte
	IsSigner   bool
	IsWritable bool
}

func encodeAccount(info *gatewayderive.AccountInfo) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	w := wireAccount{Owner: info.Owner, Lamports: info.Lamports, Data: info.Data, IsSigner: info.IsSigner, IsWritable: info.IsWritable}
	if err := enc.Encode(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeAccount(key solana.PublicKey, data []byte) (*gatewayderive.AccountInfo, error) {
	var w wireAccount
	dec := bin.NewBorshDecoder(data)
	if err := dec.Decode(&w); err != nil {
		return nil, err
	}
	return &gatewayderive.AccountInfo{
		Key:        key,
		Owner:      w.Owner,
		Lamports:   w.Lamports,
		Data:       w.Data,
		IsSigner:   w.IsSigner,
		IsWritable: w.IsWritable,
	}, nil
}

func (s *Store) Get(key solana.PublicKey) (*gatewayderive.AccountInfo, error) {
	if cached, ok := s.cache.Get(key); ok {
		clone := *cached
		clone.Data = append([]byte(nil), cached.Data...)
		return &clone, nil
	}

	raw, err := s.db.Read(context.Background(), key[:])
	if err != nil {
		if errors.Is(err, database.ErrKeyNotFound) {
			fresh := &gatewayderive.AccountInfo{Key: key, Owner: solana.SystemProgramID}
			s.cache.Add(key, fresh)
			return fresh, nil
		}
		return nil, err
	}

	info, err := decodeAccount(key, raw)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, info)
	return info, nil
}

func (s *Store) Put(info *gatewayderive.AccountInfo) error {
	data, err := encodeAccount(info)
	if err != nil {
		return err
	}
	if err := s.db.Write(context.Background(), info.Key[:], data); err != nil {
		return err
	}
	clone := *info
	clone.Data = append([]byte(nil), info.Data...)
	s.cache.Add(info.Key, &clone)
	return nil
}

func (s *Store) Transfer(from, to solana.PublicKey, lamports uint64) error {
	src, err := s.Get(from)
	if err != nil {
		return err
	}
	if src.Lamports < lamports {
		return fmt.Errorf("insufficient funds in %s", from)
	}
	dst, err := s.Get(to)
	if err != nil {
		return err
	}
	src.Lamports -= lamports
	dst.Lamports += lamports
	if err := s.Put(src); err != nil {
		return err
	}
	return s.Put(dst)
}

func (s *Store) Close(key, recipient solana.PublicKey) error {
	acc, err := s.Get(key)
	if err != nil {
		return err
	}
	recipientInfo, err := s.Get(recipient)
	if err != nil {
		return err
	}
	recipientInfo.Lamports += acc.Lamports
	if err := s.Put(recipientInfo); err != nil {
		return err
	}
	s.cache.Remove(key)
	return s.db.Delete(context.Background(), key[:])
}

var _ gatewayderive.AccountStore = (*Store)(nil)
