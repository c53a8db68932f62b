package app

import (
    "os"
    "strings"
    "time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
    if cfg == nil { return }

    if cfg.PageURL == "" {
        cfg.PageURL = os.Getenv("APTWATCH_URL")
    }
    if cfg.WebhookURL == "" {
        // DISCORD_WEBHOOK is the historical name; APTWATCH_WEBHOOK wins if both are set
        v := os.Getenv("APTWATCH_WEBHOOK")
        if v == "" { v = os.Getenv("DISCORD_WEBHOOK") }
        cfg.WebhookURL = v
    }
    if cfg.UserAgent == "" {
        cfg.UserAgent = os.Getenv("APTWATCH_UA")
    }
    if cfg.CacheDir == "" {
        cfg.CacheDir = os.Getenv("CACHE_DIR")
    }
    if cfg.ListenAddr == "" {
        cfg.ListenAddr = os.Getenv("APTWATCH_ADDR")
    }

    setDuration := func(dst *time.Duration, envKey string) {
        if *dst != 0 { return }
        if s := strings.TrimSpace(os.Getenv(envKey)); s != "" {
            if d, err := time.ParseDuration(s); err == nil {
                *dst = d
            }
        }
    }
    setDuration(&cfg.Timeout, "APTWATCH_TIMEOUT")
    setDuration(&cfg.CacheMaxAge, "CACHE_MAX_AGE")

    setBool := func(dst *bool, envKey string) {
        if *dst { return }
        if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
            if s == "1" || s == "true" || s == "yes" || s == "on" {
                *dst = true
            }
        }
    }
    setBool(&cfg.Verbose, "VERBOSE")
    setBool(&cfg.CacheClear, "CACHE_CLEAR")
    setBool(&cfg.CacheStrictPerms, "CACHE_STRICT_PERMS")
}
