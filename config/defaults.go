package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"server": map[string]interface{}{
			"addr": ":8080",
		},
		"database": map[string]interface{}{
			"main_path": "PetConnect.db",
			"auth_path": "AuthServer.db",
		},
		"auth": map[string]interface{}{
			"jwt_secret":      "",
			"token_ttl_hours": 24,
			"issuer":          "petconnect_server_go",
		},
		"redis": map[string]interface{}{
			"addr":     "",
			"password": "",
			"db":       0,
		},
		"deepseek": map[string]interface{}{
			"api_key": "",
			"model":   "deepseek-chat",
			"timeout": 120,
		},
		"uploads": map[string]interface{}{
			"dir": "./uploads",
		},
		"rate_limit": map[string]interface{}{
			"login_limit":    10,
			"window_seconds": 60,
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}
