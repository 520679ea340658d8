package config

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ValidateConfig checks that every configured value is usable before a
// gwderived process starts handling instructions.
func ValidateConfig(config *Config) error {
	if config.Program.ID != "" {
		if _, err := solana.PublicKeyFromBase58(config.Program.ID); err != nil {
			return fmt.Errorf("program.id is not a valid public key: %w", err)
		}
	}
	if config.Program.GatewayProgramID != "" {
		if _, err := solana.PublicKeyFromBase58(config.Program.GatewayProgramID); err != nil {
			return fmt.Errorf("program.gateway_program_id is not a valid public key: %w", err)
		}
	}
	if config.Storage.CacheSize < 0 {
		return fmt.Errorf("storage.cache_size must be non-negative")
	}
	if config.Storage.Path == "" {
		return fmt.Errorf("storage.path must be set")
	}
	if config.RPC.ListenAddr == "" {
		return fmt.Errorf("rpc.listen_addr must be set")
	}
	return nil
}
