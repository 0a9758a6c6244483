package config

import (
	"os"
	"time"
)

type Config struct {
	Port            string
	Environment     string
	SupabaseURL     string
	SupabaseKey     string // service role key: storage writes, admin user seeding
	SupabaseAnonKey string // public key: password sign-in
	SupabaseDBURL   string
	SupabaseJWKSURL string // Constructed from SupabaseURL + /auth/v1/.well-known/jwks.json
	CORSOrigins     string
	TablePrefix     string
	StorageBucket   string
	// Contact relay
	ResendAPIKey     string // fallback when the config table has no key
	ContactRecipient string
	ContactFrom      string
	// Web
	TemplateDir string // empty uses the embedded templates
	LogDir      string
	// Admin sessions
	AdminSessionIdle time.Duration
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	tablePrefix := getTablePrefix(env)
	supabaseURL := getEnv("SUPABASE_URL", "")

	// Construct JWKS URL from Supabase URL
	jwksURL := supabaseURL + "/auth/v1/.well-known/jwks.json"

	return &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      env,
		SupabaseURL:      supabaseURL,
		SupabaseKey:      getEnv("SUPABASE_KEY", ""),
		SupabaseAnonKey:  getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseDBURL:    getEnv("SUPABASE_DB_URL", ""),
		SupabaseJWKSURL:  jwksURL,
		CORSOrigins:      getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:      tablePrefix,
		StorageBucket:    getEnv("STORAGE_BUCKET", DefaultStorageBucket),
		ResendAPIKey:     getEnv("RESEND_API_KEY", ""),
		ContactRecipient: getEnv("CONTACT_RECIPIENT", "dyvontrae@gmail.com"),
		ContactFrom:      getEnv("CONTACT_FROM", "Portfolio Contact <onboarding@resend.dev>"),
		TemplateDir:      getEnv("TEMPLATE_DIR", ""),
		LogDir:           getEnv("LOG_DIR", ""),
		AdminSessionIdle: getDuration("ADMIN_SESSION_IDLE", 2*time.Hour),
	}
}

// IsDev reports whether dev-only behaviour (debug logs, template reload) is on.
func (c *Config) IsDev() bool {
	return c.Environment == "dev"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix, ok := os.LookupEnv("TABLE_PREFIX"); ok {
		return prefix
	}

	// Production uses the bare table names the public site reads
	switch env {
	case "prod":
		return ""
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
