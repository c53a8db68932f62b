package app

import (
	"time"

	"github.com/hyperifyio/aptwatch/internal/scrape"
)

// DefaultPageURL is the floor plan listing watched when no URL is configured.
const DefaultPageURL = "https://chestnuttowerchicago.securecafe.com/onlineleasing/chestnut-tower-apartments/floorplans.aspx"

const (
	defaultTimeout    = 30 * time.Second
	defaultListenAddr = ":8080"
)

// Config holds runtime configuration for the application.
type Config struct {
	PageURL    string
	WebhookURL string
	UserAgent  string
	Timeout    time.Duration

	// Page cache
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheClear       bool
	CacheStrictPerms bool

	// Serve
	ListenAddr string

	Verbose bool

	// Anchors locate the listing markup. Zero fields fall back to
	// scrape.DefaultAnchors.
	Anchors scrape.Anchors
}

// ApplyDefaults fills whatever flags, env and file config left empty.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.PageURL == "" {
		cfg.PageURL = DefaultPageURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaultListenAddr
	}
	cfg.Anchors = mergeAnchors(cfg.Anchors, scrape.DefaultAnchors())
}

func defaultUserAgent() string {
	return "aptwatch/" + BuildVersion + " (+https://github.com/hyperifyio/aptwatch)"
}

func mergeAnchors(a, def scrape.Anchors) scrape.Anchors {
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return scrape.Anchors{
		ContainerID:       pick(a.ContainerID, def.ContainerID),
		GroupClass:        pick(a.GroupClass, def.GroupClass),
		ToggleClass:       pick(a.ToggleClass, def.ToggleClass),
		TableClass:        pick(a.TableClass, def.TableClass),
		RowScope:          pick(a.RowScope, def.RowScope),
		ImageCellClass:    pick(a.ImageCellClass, def.ImageCellClass),
		ImageSrcAttr:      pick(a.ImageSrcAttr, def.ImageSrcAttr),
		PlanLabel:         pick(a.PlanLabel, def.PlanLabel),
		BedsLabel:         pick(a.BedsLabel, def.BedsLabel),
		SqFtLabel:         pick(a.SqFtLabel, def.SqFtLabel),
		RentLabel:         pick(a.RentLabel, def.RentLabel),
		AvailabilityLabel: pick(a.AvailabilityLabel, def.AvailabilityLabel),
	}
}
