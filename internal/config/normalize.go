package config

import "strings"

func normalizeDatabaseConfig(cfg DatabaseRuntimeConfig) DatabaseRuntimeConfig {
	cfg.Driver = strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch cfg.Driver {
	case "", "mongo":
		cfg.Driver = DriverMongoDB
	case "postgresql", "pg":
		cfg.Driver = DriverPostgres
	case "sqlite3":
		cfg.Driver = DriverSQLite
	}
	cfg.DSN = strings.TrimSpace(cfg.DSN)
	cfg.URL = strings.TrimSpace(cfg.URL)
	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.User = strings.TrimSpace(cfg.User)
	cfg.Password = strings.TrimSpace(cfg.Password)
	cfg.Name = strings.TrimSpace(cfg.Name)
	cfg.Charset = strings.TrimSpace(cfg.Charset)
	cfg.Loc = strings.TrimSpace(cfg.Loc)
	cfg.SSLMode = strings.TrimSpace(cfg.SSLMode)
	cfg.Path = strings.TrimSpace(cfg.Path)
	cfg.Collection = strings.TrimSpace(cfg.Collection)

	if cfg.Name == "" {
		cfg.Name = defaultDBName
	}
	switch cfg.Driver {
	case DriverMySQL, DriverPostgres:
		if cfg.Host == "" {
			cfg.Host = defaultDBHost
		}
		if cfg.Port == 0 {
			if cfg.Driver == DriverPostgres {
				cfg.Port = defaultPGPort
			} else {
				cfg.Port = defaultMySQLPort
			}
		}
		if cfg.User == "" {
			cfg.User = defaultDBUser
		}
		if cfg.Password == "" {
			cfg.Password = defaultDBPassword
		}
		if cfg.Charset == "" {
			cfg.Charset = defaultDBCharset
		}
		if cfg.Loc == "" {
			cfg.Loc = defaultDBLoc
		}
		if cfg.SSLMode == "" {
			cfg.SSLMode = "disable"
		}
	case DriverSQLite:
		if cfg.Path == "" {
			cfg.Path = defaultSQLitePath
		}
	case DriverMongoDB:
		if cfg.Collection == "" {
			cfg.Collection = defaultCollection
		}
	}
	if cfg.Params != nil {
		cfg.Params = copyStringMap(cfg.Params)
	}
	return cfg
}

func normalizeRedisConfig(cfg RedisRuntimeConfig) RedisRuntimeConfig {
	cfg.URL = strings.TrimSpace(cfg.URL)
	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.Username = strings.TrimSpace(cfg.Username)
	cfg.Password = strings.TrimSpace(cfg.Password)
	if cfg.Host == "" {
		cfg.Host = defaultRedisHost
	}
	if cfg.Port == 0 {
		cfg.Port = defaultRedisPort
	}
	return cfg
}

func normalizeAIConfig(cfg AIRuntimeConfig) AIRuntimeConfig {
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.Provider = strings.ReplaceAll(cfg.Provider, "_", "-")
	if cfg.Provider == "" {
		cfg.Provider = defaultAIProvider
	}
	cfg.Endpoint = strings.TrimSpace(cfg.Endpoint)
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.Model = strings.TrimSpace(cfg.Model)
	return cfg
}
