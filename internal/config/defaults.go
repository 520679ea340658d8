package config

import "github.com/spf13/viper"

// setDefaults sets the values a gwderived instance runs with if neither the
// config file nor the environment overrides them.
func setDefaults(v *viper.Viper) {
	// Empty defaults register the program keys with viper, so their
	// GWDERIVED_PROGRAM_* environment variables are picked up on Unmarshal.
	v.SetDefault("program.id", "")
	v.SetDefault("program.system_program_id", "")
	v.SetDefault("program.gateway_program_id", "")

	v.SetDefault("storage.path", "/var/lib/gwderived/db")
	v.SetDefault("storage.cache_size", 4096)

	v.SetDefault("rpc.listen_addr", "127.0.0.1:5105")

	v.SetDefault("fee.default_issue_amount", 0)
	v.SetDefault("fee.default_refresh_amount", 0)
}
