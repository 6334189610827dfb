package config

import "os"

type Config struct {
	Token    string
	MySQLDSN string
	RedisURL string
	Port     string
	// Domain is the public base URL sites post webhooks to, without a
	// trailing slash.
	Domain string
	// DevGuildID scopes slash commands to one guild for instant updates.
	// Empty means global registration.
	DevGuildID string
}

func Load() Config {
	return Config{
		Token:      os.Getenv("DISCORD_TOKEN"),
		MySQLDSN:   getenv("MYSQL_DSN", "suggestions:suggestions@tcp(127.0.0.1:3306)/suggestions"),
		RedisURL:   getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		Port:       getenv("PORT", "8080"),
		Domain:     os.Getenv("DOMAIN"),
		DevGuildID: os.Getenv("GUILD_ID"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
