package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// DashboardConfig holds the tunable presentation settings for the KPI
// dashboard. It is read from dashboard.yml and hot-reloaded on change.
type DashboardConfig struct {
	// DefaultWindowDays is the date window applied when the caller supplies
	// no range.
	DefaultWindowDays int `mapstructure:"defaultWindowDays"`
	// BreakdownLimit caps ranked category breakdowns (top-N).
	BreakdownLimit int `mapstructure:"breakdownLimit"`

	Files DatasetFiles `mapstructure:"files"`
}

// DatasetFiles names the four dataset CSV files inside DATA_DIR.
type DatasetFiles struct {
	Subscribers  string `mapstructure:"subscribers"`
	Bills        string `mapstructure:"bills"`
	Tickets      string `mapstructure:"tickets"`
	UsageRecords string `mapstructure:"usageRecords"`
}

func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		DefaultWindowDays: 30,
		BreakdownLimit:    10,
		Files: DatasetFiles{
			Subscribers:  "SUBSCRIBERS.csv",
			Bills:        "BILLS.csv",
			Tickets:      "TICKETS.csv",
			UsageRecords: "USAGE_RECORDS.csv",
		},
	}
}

type DashboardConfigHolder struct {
	current atomic.Value // holds DashboardConfig
}

func NewDashboardConfigHolder() (*DashboardConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("dashboard")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/menara")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MENARA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultDashboardConfig()
	v.SetDefault("dashboard.defaultWindowDays", defaults.DefaultWindowDays)
	v.SetDefault("dashboard.breakdownLimit", defaults.BreakdownLimit)
	v.SetDefault("dashboard.files.subscribers", defaults.Files.Subscribers)
	v.SetDefault("dashboard.files.bills", defaults.Files.Bills)
	v.SetDefault("dashboard.files.tickets", defaults.Files.Tickets)
	v.SetDefault("dashboard.files.usageRecords", defaults.Files.UsageRecords)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg DashboardConfig
	if err := v.UnmarshalKey("dashboard", &cfg); err != nil {
		return nil, err
	}
	if err := validateDashboardConfig(cfg); err != nil {
		return nil, err
	}

	holder := &DashboardConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated DashboardConfig
		if err := v.UnmarshalKey("dashboard", &updated); err != nil {
			log.Printf("[dashboard-config] reload failed: %v", err)
			return
		}
		if err := validateDashboardConfig(updated); err != nil {
			log.Printf("[dashboard-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[dashboard-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticDashboardConfigHolder wraps a fixed configuration with no file
// watching. Intended for tests.
func NewStaticDashboardConfigHolder(cfg DashboardConfig) *DashboardConfigHolder {
	holder := &DashboardConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

// Current returns the active dashboard configuration.
func (h *DashboardConfigHolder) Current() DashboardConfig {
	return h.current.Load().(DashboardConfig)
}

func validateDashboardConfig(cfg DashboardConfig) error {
	if cfg.DefaultWindowDays <= 0 {
		return errors.New("defaultWindowDays must be positive")
	}
	if cfg.BreakdownLimit <= 0 {
		return errors.New("breakdownLimit must be positive")
	}
	if cfg.Files.Subscribers == "" || cfg.Files.Bills == "" || cfg.Files.Tickets == "" || cfg.Files.UsageRecords == "" {
		return errors.New("dataset file names must not be empty")
	}
	return nil
}
