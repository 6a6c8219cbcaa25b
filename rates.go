package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// DefaultRateURL serves the last published reading of the central bank's
// SGS series 432 (annual SELIC target, percent).
const DefaultRateURL = "https://api.bcb.gov.br/dados/serie/bcdata.sgs.432/dados/ultimos/1?formato=json"

const (
	// Defaults used until the first successful fetch.
	DefaultAnnualRate  = 12.75
	DefaultMonthlyRate = 0.01

	defaultRefreshInterval = 12 * time.Hour
	rateCacheKey           = "invest:base-rate"
	// Readings outside this range are treated as API glitches.
	maxPlausibleAnnualRate = 50.0
)

// RateSnapshot is one cached central-bank reading. MonthlyRate is the
// fractional rate the engine consumes; AnnualRate is kept for display.
type RateSnapshot struct {
	AnnualRate    float64   `json:"annual_rate"`
	MonthlyRate   float64   `json:"monthly_rate"`
	ReferenceDate string    `json:"reference_date"`
	FetchedAt     time.Time `json:"fetched_at"`
	FromAPI       bool      `json:"from_api"`
}

// MonthlyFromAnnual converts an annual percentage rate to the equivalent
// fractional monthly rate.
func MonthlyFromAnnual(annualPercent float64) float64 {
	return math.Pow(1+annualPercent/100, 1.0/12) - 1
}

// RateCache persists a snapshot between runs.
type RateCache interface {
	Load() (RateSnapshot, bool)
	Store(RateSnapshot) error
}

// FileRateCache keeps the snapshot in a local JSON file. This is the
// default backend for single-machine use.
type FileRateCache struct {
	Path string
}

func (c *FileRateCache) Load() (RateSnapshot, bool) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return RateSnapshot{}, false
	}
	var snap RateSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return RateSnapshot{}, false
	}
	return snap, true
}

func (c *FileRateCache) Store(snap RateSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(c.Path, data, 0644)
}

// RedisRateCache shares the snapshot through Redis, for deployments where
// several instances should reuse one fetch.
type RedisRateCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRateCache(addr string, ttl time.Duration) *RedisRateCache {
	return &RedisRateCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func (c *RedisRateCache) Load() (RateSnapshot, bool) {
	val, err := c.client.Get(context.Background(), rateCacheKey).Result()
	if err != nil {
		return RateSnapshot{}, false
	}
	var snap RateSnapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return RateSnapshot{}, false
	}
	return snap, true
}

func (c *RedisRateCache) Store(snap RateSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(context.Background(), rateCacheKey, data, c.ttl).Err()
}

// RateProvider fetches the base rate from the central bank API and serves
// it from cache between refreshes. Safe for concurrent use.
type RateProvider struct {
	url      string
	client   *http.Client
	cache    RateCache
	interval time.Duration
	log      zerolog.Logger

	mu   sync.Mutex
	snap RateSnapshot
}

// NewRateProvider builds a provider seeded from the cache when a snapshot
// is available, otherwise from the built-in defaults. A nil cache disables
// persistence.
func NewRateProvider(url string, cache RateCache, interval time.Duration, log zerolog.Logger) *RateProvider {
	if url == "" {
		url = DefaultRateURL
	}
	if interval <= 0 {
		interval = defaultRefreshInterval
	}

	p := &RateProvider{
		url:      url,
		client:   &http.Client{Timeout: 10 * time.Second},
		cache:    cache,
		interval: interval,
		log:      log.With().Str("component", "rates").Logger(),
		snap: RateSnapshot{
			AnnualRate:  DefaultAnnualRate,
			MonthlyRate: DefaultMonthlyRate,
		},
	}
	if cache != nil {
		if snap, ok := cache.Load(); ok {
			p.snap = snap
		}
	}
	return p
}

// sgsReading mirrors one element of the SGS payload. The API returns the
// value as a string.
type sgsReading struct {
	Date  string `json:"data"`
	Value string `json:"valor"`
}

// Snapshot returns the current reading, refreshing first when the cached
// one is older than the refresh interval. A failed refresh falls back to
// the cached reading.
func (p *RateProvider) Snapshot(ctx context.Context) RateSnapshot {
	p.mu.Lock()
	stale := p.snap.FetchedAt.IsZero() || time.Since(p.snap.FetchedAt) > p.interval
	p.mu.Unlock()

	if stale {
		if err := p.Refresh(ctx); err != nil {
			p.log.Warn().Err(err).Msg("rate refresh failed, keeping cached value")
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}

// Refresh fetches a fresh reading unconditionally and persists it.
func (p *RateProvider) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching base rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	var readings []sgsReading
	if err := json.NewDecoder(resp.Body).Decode(&readings); err != nil {
		return fmt.Errorf("decoding rate payload: %w", err)
	}
	if len(readings) == 0 {
		return fmt.Errorf("rate API returned no readings")
	}

	annual, err := strconv.ParseFloat(strings.TrimSpace(readings[0].Value), 64)
	if err != nil {
		return fmt.Errorf("parsing rate value %q: %w", readings[0].Value, err)
	}
	if annual < 0 || annual > maxPlausibleAnnualRate {
		return fmt.Errorf("implausible annual rate %.2f", annual)
	}

	snap := RateSnapshot{
		AnnualRate:    annual,
		MonthlyRate:   MonthlyFromAnnual(annual),
		ReferenceDate: readings[0].Date,
		FetchedAt:     time.Now(),
		FromAPI:       true,
	}

	p.mu.Lock()
	p.snap = snap
	p.mu.Unlock()

	if p.cache != nil {
		if err := p.cache.Store(snap); err != nil {
			p.log.Warn().Err(err).Msg("failed to persist rate snapshot")
		}
	}

	p.log.Info().
		Float64("annual_pct", annual).
		Float64("monthly", snap.MonthlyRate).
		Str("reference", snap.ReferenceDate).
		Msg("base rate updated")
	return nil
}

// FreshnessLabel describes the snapshot age for display.
func (p *RateProvider) FreshnessLabel() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.snap.FetchedAt.IsZero() {
		return "rates not fetched yet, using defaults"
	}
	age := time.Since(p.snap.FetchedAt)
	switch {
	case age < time.Hour:
		return fmt.Sprintf("updated %d min ago", int(age.Minutes()))
	case age <= p.interval:
		return fmt.Sprintf("updated %dh ago", int(age.Hours()))
	default:
		return "rates are stale, refresh pending"
	}
}
