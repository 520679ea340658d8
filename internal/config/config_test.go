package config_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/civicteam/gateway-derive/internal/config"
)

func TestLoadDefaultConfig(t *testing.T) {
	cfg, err := config.LoadDefaultConfig()
	require.NoError(t, err)
	require.Equal(t, "/var/lib/gwderived/db", cfg.Storage.Path)
	require.Equal(t, 4096, cfg.Storage.CacheSize)
	require.Equal(t, "127.0.0.1:5105", cfg.RPC.ListenAddr)
}

func TestValidateConfigRejectsBadProgramID(t *testing.T) {
	cfg := &config.Config{
		Program: config.ProgramConfig{ID: "not-a-pubkey"},
		Storage: config.StorageConfig{Path: "/tmp/x"},
		RPC:     config.RPCConfig{ListenAddr: "127.0.0.1:0"},
	}
	err := config.ValidateConfig(cfg)
	require.Error(t, err)
}

func TestValidateConfigAcceptsRealPubkey(t *testing.T) {
	cfg := &config.Config{
		Program: config.ProgramConfig{ID: solana.NewWallet().PublicKey().String()},
		Storage: config.StorageConfig{Path: "/tmp/x", CacheSize: 1},
		RPC:     config.RPCConfig{ListenAddr: "127.0.0.1:0"},
	}
	require.NoError(t, config.ValidateConfig(cfg))
}

func TestValidateConfigRejectsEmptyStoragePath(t *testing.T) {
	cfg := &config.Config{RPC: config.RPCConfig{ListenAddr: "127.0.0.1:0"}}
	err := config.ValidateConfig(cfg)
	require.Error(t, err)
}
