package config

import "os"

// Company is the shop's fixed legal identity stamped onto every new
// invoice as the seller snapshot.
type Company struct {
	Name      string
	Address   string
	GSTIN     string
	State     string
	StateCode string
}

type Config struct {
	Port        string
	DatabaseDSN string
	Env         string
	Company     Company
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	return Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "file:vmobile.db"),
		Env:         getEnv("APP_ENV", "development"),
		Company: Company{
			Name:      getEnv("COMPANY_NAME", "V Mobile"),
			Address:   getEnv("COMPANY_ADDRESS", "Shop No. 12, Main Road, Hyderabad"),
			GSTIN:     getEnv("COMPANY_GSTIN", "36AAAAA0000A1Z5"),
			State:     getEnv("COMPANY_STATE", "Telangana"),
			StateCode: getEnv("COMPANY_STATE_CODE", "36"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
