package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/aptwatch/internal/cache"
	"github.com/hyperifyio/aptwatch/internal/fetch"
	"github.com/hyperifyio/aptwatch/internal/notify"
	"github.com/hyperifyio/aptwatch/internal/scrape"
)

// ErrNoWebhook is returned by Alert when availabilities were found but no
// webhook is configured to deliver them.
var ErrNoWebhook = errors.New("no webhook configured (set -webhook or DISCORD_WEBHOOK)")

// pageGetter is satisfied by *fetch.Client; tests substitute a stub.
type pageGetter interface {
	Get(ctx context.Context, url string) ([]byte, string, error)
}

type App struct {
	cfg     Config
	pages   pageGetter
	webhook *notify.Webhook
}

// New wires the fetch client, page cache and webhook from cfg. cfg should
// already carry defaults (see ApplyDefaults).
func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	hc := newHTTPClient(cfg.Timeout)
	client := &fetch.Client{
		HTTPClient:        hc,
		UserAgent:         cfg.UserAgent,
		PerRequestTimeout: cfg.Timeout,
		MaxConcurrent:     4,
	}
	if cfg.CacheDir != "" {
		pc := &cache.PageCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
		if cfg.CacheClear {
			if err := pc.Clear(); err != nil {
				log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache clear failed")
			}
		}
		if cfg.CacheMaxAge > 0 {
			if n, err := cache.PurgeByAge(cfg.CacheDir, cfg.CacheMaxAge); err != nil {
				log.Warn().Err(err).Msg("cache purge failed")
			} else if n > 0 {
				log.Debug().Int("removed", n).Msg("purged stale cache entries")
			}
		}
		client.Cache = pc
	}
	return &App{
		cfg:     cfg,
		pages:   client,
		webhook: &notify.Webhook{URL: cfg.WebhookURL, HTTPClient: hc, UserAgent: cfg.UserAgent},
	}, nil
}

// Snapshot fetches the configured page and extracts its availability.
func (a *App) Snapshot(ctx context.Context) (scrape.Snapshot, error) {
	body, _, err := a.pages.Get(ctx, a.cfg.PageURL)
	if err != nil {
		return scrape.Snapshot{}, fmt.Errorf("fetch %s: %w", a.cfg.PageURL, err)
	}
	snap, err := scrape.ParseHTML(bytes.NewReader(body), a.cfg.PageURL, a.cfg.Anchors)
	if err != nil {
		return scrape.Snapshot{}, fmt.Errorf("extract: %w", err)
	}
	log.Info().Int("categories", len(snap.Categories)).Int("plans", len(snap.FloorPlans())).Msg("extracted availability")
	return snap, nil
}

// ListOptions selects and formats the categories printed by List.
type ListOptions struct {
	Bedrooms []int
	JSON     bool
	PDFPath  string
}

// List writes the categories matching opt.Bedrooms to w, and to a PDF file
// when opt.PDFPath is set.
func (a *App) List(ctx context.Context, w io.Writer, opt ListOptions) error {
	snap, err := a.Snapshot(ctx)
	if err != nil {
		return err
	}
	categories := scrape.CategoriesWithBedrooms(snap, opt.Bedrooms)
	if opt.PDFPath != "" {
		if err := writeListingPDF(categories, snap.SourceURL, opt.PDFPath); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		log.Info().Str("path", opt.PDFPath).Msg("wrote listing pdf")
	}
	if opt.JSON {
		if categories == nil {
			categories = []scrape.Category{}
		}
		return writeJSON(w, scrape.Snapshot{SourceURL: snap.SourceURL, Categories: categories})
	}
	return writeCategories(w, categories)
}

// Alert reports the requested plans that have vacancies and posts them to the
// webhook. It returns the matched plans.
func (a *App) Alert(ctx context.Context, w io.Writer, names []string) ([]scrape.FloorPlan, error) {
	if a.webhook.URL == "" {
		return nil, ErrNoWebhook
	}
	snap, err := a.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	plans := scrape.AvailablePlans(snap, names)
	if len(plans) == 0 {
		fmt.Fprintln(w, "Found no availabilities")
		return nil, nil
	}
	fmt.Fprintln(w, "Found availabilities")
	if err := writePlans(w, plans); err != nil {
		return plans, err
	}
	if err := a.webhook.Send(ctx, plans, snap.SourceURL); err != nil {
		return plans, fmt.Errorf("notify: %w", err)
	}
	log.Info().Int("plans", len(plans)).Msg("availability alert sent")
	return plans, nil
}
