package app

import (
    "encoding/json"
    "errors"
    "fmt"
    "net/url"
    "os"
    "path/filepath"
    "strings"
    "time"

    yaml "gopkg.in/yaml.v3"

    "github.com/hyperifyio/aptwatch/internal/scrape"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
    URL       string        `yaml:"url" json:"url"`
    Webhook   string        `yaml:"webhook" json:"webhook"`
    UserAgent string        `yaml:"userAgent" json:"userAgent"`
    Timeout   time.Duration `yaml:"timeout" json:"timeout"`
    Verbose   bool          `yaml:"verbose" json:"verbose"`

    Cache struct {
        Dir         string        `yaml:"dir" json:"dir"`
        MaxAge      time.Duration `yaml:"maxAge" json:"maxAge"`
        Clear       bool          `yaml:"clear" json:"clear"`
        StrictPerms bool          `yaml:"strictPerms" json:"strictPerms"`
    } `yaml:"cache" json:"cache"`

    Serve struct {
        Addr string `yaml:"addr" json:"addr"`
    } `yaml:"serve" json:"serve"`

    // Anchors override individual markup hooks when the page layout shifts.
    Anchors struct {
        ContainerID       string `yaml:"containerId" json:"containerId"`
        GroupClass        string `yaml:"groupClass" json:"groupClass"`
        ToggleClass       string `yaml:"toggleClass" json:"toggleClass"`
        TableClass        string `yaml:"tableClass" json:"tableClass"`
        RowScope          string `yaml:"rowScope" json:"rowScope"`
        ImageCellClass    string `yaml:"imageCellClass" json:"imageCellClass"`
        ImageSrcAttr      string `yaml:"imageSrcAttr" json:"imageSrcAttr"`
        PlanLabel         string `yaml:"planLabel" json:"planLabel"`
        BedsLabel         string `yaml:"bedsLabel" json:"bedsLabel"`
        SqFtLabel         string `yaml:"sqftLabel" json:"sqftLabel"`
        RentLabel         string `yaml:"rentLabel" json:"rentLabel"`
        AvailabilityLabel string `yaml:"availabilityLabel" json:"availabilityLabel"`
    } `yaml:"anchors" json:"anchors"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
    var fc FileConfig
    b, err := os.ReadFile(path)
    if err != nil {
        return fc, err
    }
    switch ext := filepath.Ext(path); ext {
    case ".yaml", ".yml":
        if err := yaml.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse yaml: %w", err)
        }
    case ".json":
        if err := json.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse json: %w", err)
        }
    default:
        // Try YAML then JSON
        if err := yaml.Unmarshal(b, &fc); err != nil {
            if jerr := json.Unmarshal(b, &fc); jerr != nil {
                return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
            }
        }
    }
    return fc, nil
}

// ApplyFileConfig overlays values from fc into any fields still unset in cfg.
// Flags and env have already been applied; the file only supplies defaults.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
    if cfg == nil { return }

    if cfg.PageURL == "" && fc.URL != "" { cfg.PageURL = fc.URL }
    if cfg.WebhookURL == "" && fc.Webhook != "" { cfg.WebhookURL = fc.Webhook }
    if cfg.UserAgent == "" && fc.UserAgent != "" { cfg.UserAgent = fc.UserAgent }
    if cfg.Timeout == 0 && fc.Timeout > 0 { cfg.Timeout = fc.Timeout }
    if !cfg.Verbose && fc.Verbose { cfg.Verbose = true }

    if cfg.CacheDir == "" && fc.Cache.Dir != "" { cfg.CacheDir = fc.Cache.Dir }
    if cfg.CacheMaxAge == 0 && fc.Cache.MaxAge > 0 { cfg.CacheMaxAge = fc.Cache.MaxAge }
    if !cfg.CacheClear && fc.Cache.Clear { cfg.CacheClear = true }
    if !cfg.CacheStrictPerms && fc.Cache.StrictPerms { cfg.CacheStrictPerms = true }

    if cfg.ListenAddr == "" && fc.Serve.Addr != "" { cfg.ListenAddr = fc.Serve.Addr }

    fa := scrape.Anchors{
        ContainerID:       fc.Anchors.ContainerID,
        GroupClass:        fc.Anchors.GroupClass,
        ToggleClass:       fc.Anchors.ToggleClass,
        TableClass:        fc.Anchors.TableClass,
        RowScope:          fc.Anchors.RowScope,
        ImageCellClass:    fc.Anchors.ImageCellClass,
        ImageSrcAttr:      fc.Anchors.ImageSrcAttr,
        PlanLabel:         fc.Anchors.PlanLabel,
        BedsLabel:         fc.Anchors.BedsLabel,
        SqFtLabel:         fc.Anchors.SqFtLabel,
        RentLabel:         fc.Anchors.RentLabel,
        AvailabilityLabel: fc.Anchors.AvailabilityLabel,
    }
    cfg.Anchors = mergeAnchors(cfg.Anchors, fa)
}

// ValidateConfig checks settings every subcommand needs. Call it after
// ApplyDefaults.
func ValidateConfig(cfg Config) error {
    u, err := url.Parse(strings.TrimSpace(cfg.PageURL))
    if err != nil || u.Host == "" {
        return fmt.Errorf("config: invalid page url %q", cfg.PageURL)
    }
    if u.Scheme != "http" && u.Scheme != "https" {
        return fmt.Errorf("config: page url must be http or https, got %q", u.Scheme)
    }
    if cfg.Timeout < 0 || cfg.CacheMaxAge < 0 {
        return errors.New("config: negative durations are not allowed")
    }
    return nil
}
