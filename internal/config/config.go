// Package config loads gwderived's runtime configuration: viper defaults,
// then a config file, then GWDERIVED_-prefixed environment variables,
// unmarshalled into a typed struct and validated before use.
package config

// Config is the complete configuration for a gwderived process: the
// program/gateway identities it operates against, where it persists
// account state, and how its JSON-RPC harness is exposed.
type Config struct {
	Program ProgramConfig `mapstructure:"program"`
	Storage StorageConfig `mapstructure:"storage"`
	RPC     RPCConfig     `mapstructure:"rpc"`
	Fee     FeeConfig     `mapstructure:"fee"`

	configPath string
}

// ProgramConfig identifies the on-chain program IDs this instance operates
// against. Base58-encoded, matching solana-go's Pubkey string form.
type ProgramConfig struct {
	ID               string `mapstructure:"id"`
	SystemProgramID  string `mapstructure:"system_program_id"`
	GatewayProgramID string `mapstructure:"gateway_program_id"`
}

// StorageConfig controls the pebble-backed account store.
type StorageConfig struct {
	Path      string `mapstructure:"path"`
	CacheSize int    `mapstructure:"cache_size"`
}

// RPCConfig controls the JSON-RPC harness's listen address.
type RPCConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

// FeeConfig holds default fee amounts read from configuration. Nothing in
// gwderived consumes them: a component whose Fee account does not exist yet
// is charged nothing.
type FeeConfig struct {
	DefaultIssueAmount   uint64 `mapstructure:"default_issue_amount"`
	DefaultRefreshAmount uint64 `mapstructure:"default_refresh_amount"`
}

// GetConfigPath returns the file this Config was loaded from, if any.
func (c *Config) GetConfigPath() string {
	return c.configPath
}
