package config

import (
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	pricingdomain "github.com/attestra/attestra/internal/pricing/domain"
)

// PricingSettings is the on-disk shape of the pricing configuration.
type PricingSettings struct {
	BaseRate              float64            `mapstructure:"baseRate"`
	WordsPerPage          int                `mapstructure:"wordsPerPage"`
	ComplexityMultipliers map[string]float64 `mapstructure:"complexityMultipliers"`
	MinBillablePages      float64            `mapstructure:"minBillablePages"`
	RushMultiplier        float64            `mapstructure:"rushMultiplier"`
	SameDayMultiplier     float64            `mapstructure:"sameDayMultiplier"`
	StandardDays          int                `mapstructure:"standardDays"`
	RushDays              int                `mapstructure:"rushDays"`
}

// DefaultPricingSettings returns the documented defaults used when no
// pricing.yml is present.
func DefaultPricingSettings() PricingSettings {
	return PricingSettings{
		BaseRate:     65,
		WordsPerPage: 225,
		ComplexityMultipliers: map[string]float64{
			string(pricingdomain.ComplexityEasy):   1.0,
			string(pricingdomain.ComplexityMedium): 1.15,
			string(pricingdomain.ComplexityHard):   1.25,
		},
		MinBillablePages:  1.0,
		RushMultiplier:    0.30,
		SameDayMultiplier: 2.00,
		StandardDays:      7,
		RushDays:          2,
	}
}

// PricingConfigHolder exposes a hot-reloadable, always-consistent snapshot of
// the pricing configuration. Readers never see a half-applied reload.
type PricingConfigHolder struct {
	current atomic.Value // holds pricingdomain.Config
}

// NewPricingConfigHolder loads pricing.yml (volume mount, system config, or
// the working directory) with defaults for absent keys, validates it, and
// watches the file for changes. An invalid reload is logged and ignored so a
// bad edit can never poison running calculations.
func NewPricingConfigHolder() (*PricingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("pricing")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/attestra/config")
	v.AddConfigPath("/etc/attestra")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ATTESTRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultPricingSettings()
	v.SetDefault("pricing.baseRate", defaults.BaseRate)
	v.SetDefault("pricing.wordsPerPage", defaults.WordsPerPage)
	v.SetDefault("pricing.complexityMultipliers", defaults.ComplexityMultipliers)
	v.SetDefault("pricing.minBillablePages", defaults.MinBillablePages)
	v.SetDefault("pricing.rushMultiplier", defaults.RushMultiplier)
	v.SetDefault("pricing.sameDayMultiplier", defaults.SameDayMultiplier)
	v.SetDefault("pricing.standardDays", defaults.StandardDays)
	v.SetDefault("pricing.rushDays", defaults.RushDays)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg, err := unmarshalPricing(v)
	if err != nil {
		return nil, err
	}

	holder := &PricingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := unmarshalPricing(v)
		if err != nil {
			log.Printf("[pricing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[pricing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticPricingConfigHolder wraps a fixed configuration for callers that
// manage configuration themselves, such as tests and embedded use.
func NewStaticPricingConfigHolder(cfg pricingdomain.Config) *PricingConfigHolder {
	holder := &PricingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

// Snapshot returns the current immutable pricing configuration. Every
// calculation run takes exactly one snapshot.
func (h *PricingConfigHolder) Snapshot() pricingdomain.Config {
	return h.current.Load().(pricingdomain.Config)
}

func unmarshalPricing(v *viper.Viper) (pricingdomain.Config, error) {
	var raw PricingSettings
	if err := v.UnmarshalKey("pricing", &raw); err != nil {
		return pricingdomain.Config{}, err
	}
	return raw.ToDomain()
}

// ToDomain converts the file shape to the engine's decimal-based config and
// validates it.
func (s PricingSettings) ToDomain() (pricingdomain.Config, error) {
	multipliers := make(map[pricingdomain.ComplexityTier]decimal.Decimal, len(s.ComplexityMultipliers))
	for tier, mult := range s.ComplexityMultipliers {
		multipliers[pricingdomain.ComplexityTier(tier)] = decimal.NewFromFloat(mult)
	}

	cfg := pricingdomain.Config{
		BaseRate:              decimal.NewFromFloat(s.BaseRate),
		WordsPerPage:          s.WordsPerPage,
		ComplexityMultipliers: multipliers,
		MinBillablePages:      decimal.NewFromFloat(s.MinBillablePages),
		RushMultiplier:        decimal.NewFromFloat(s.RushMultiplier),
		SameDayMultiplier:     decimal.NewFromFloat(s.SameDayMultiplier),
		StandardDays:          s.StandardDays,
		RushDays:              s.RushDays,
	}
	if err := cfg.Validate(); err != nil {
		return pricingdomain.Config{}, err
	}
	return cfg, nil
}
