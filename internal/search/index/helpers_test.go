package index

import "github.com/kamusis/smartfind/internal/config"

func searchConfig(dirs ...string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.IncludeDirectories = dirs
	return cfg
}
