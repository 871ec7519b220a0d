package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"lanerate/internal/errors"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Providers configures the external data providers. Every provider is
	// optional: a missing API key disables that tier and the engine relies
	// on the next fallback in the chain.
	Providers ProvidersConfig `json:"providers" yaml:"providers"`

	// Engine configures cost-model and rate-recommendation defaults.
	Engine *EngineConfig `json:"engine" yaml:"engine"`

	// FuelCache configures the process-wide fuel price cache.
	FuelCache *FuelCacheConfig `json:"fuelCache" yaml:"fuelCache"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// ProviderConfig holds the connection settings for a single external provider.
type ProviderConfig struct {
	APIKey  string        `json:"apiKey" yaml:"apiKey"`
	BaseURL string        `json:"baseUrl" yaml:"baseUrl"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// Enabled reports whether the provider tier is configured at all.
func (p ProviderConfig) Enabled() bool {
	return strings.TrimSpace(p.APIKey) != ""
}

// ProvidersConfig enumerates the optional provider tiers.
type ProvidersConfig struct {
	// TruckRouting is the truck-legal routing provider (primary tier).
	TruckRouting ProviderConfig `json:"truckRouting" yaml:"truckRouting"`
	// Mapping is the generic geocoding/routing provider (secondary tier).
	Mapping ProviderConfig `json:"mapping" yaml:"mapping"`
	// Fuel is the per-state diesel price provider.
	Fuel ProviderConfig `json:"fuel" yaml:"fuel"`
	// Toll is the toll calculation provider.
	Toll ProviderConfig `json:"toll" yaml:"toll"`
	// Weather is the forecast provider.
	Weather ProviderConfig `json:"weather" yaml:"weather"`
}

// EngineConfig holds cost-model and rate-recommendation defaults. Caller
// supplied operating costs override these per request.
type EngineConfig struct {
	// DefFraction is the DEF cost as a fraction of fuel cost.
	DefFraction float64 `json:"defFraction" yaml:"defFraction"`
	// MaintenanceRate is the per-mile maintenance cost in dollars.
	MaintenanceRate float64 `json:"maintenanceRate" yaml:"maintenanceRate"`
	// TireRate is the per-mile tire cost in dollars.
	TireRate float64 `json:"tireRate" yaml:"tireRate"`
	// MilesPerMonth prorates fixed monthly costs into a per-mile allocation.
	MilesPerMonth float64 `json:"milesPerMonth" yaml:"milesPerMonth"`
	// HotelNightlyRate applies per night once a trip exceeds one day of service.
	HotelNightlyRate float64 `json:"hotelNightlyRate" yaml:"hotelNightlyRate"`
	// MinimumMargin is the floor margin for the recommended rate.
	MinimumMargin float64 `json:"minimumMargin" yaml:"minimumMargin"`
	// CostPlusMargin is applied when no market intelligence is available.
	CostPlusMargin float64 `json:"costPlusMargin" yaml:"costPlusMargin"`
}

// FuelCacheConfig controls the TTL of fuel price cache entries.
type FuelCacheConfig struct {
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// LoadWithEnv loads .yaml files through koanf, then overlays environment
// variables so deployments can override any key without editing files.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: PROVIDERS_TRUCKROUTING_APIKEY -> providers.truckRouting.apiKey
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Engine == nil {
		c.Engine = &EngineConfig{}
	}
	if c.Engine.DefFraction <= 0 {
		c.Engine.DefFraction = 0.03
	}
	if c.Engine.MaintenanceRate <= 0 {
		c.Engine.MaintenanceRate = 0.18
	}
	if c.Engine.TireRate <= 0 {
		c.Engine.TireRate = 0.04
	}
	if c.Engine.MilesPerMonth <= 0 {
		c.Engine.MilesPerMonth = 10000
	}
	if c.Engine.HotelNightlyRate <= 0 {
		c.Engine.HotelNightlyRate = 125
	}
	if c.Engine.MinimumMargin <= 0 {
		c.Engine.MinimumMargin = 0.10
	}
	if c.Engine.CostPlusMargin <= 0 {
		c.Engine.CostPlusMargin = 0.15
	}

	if c.FuelCache == nil {
		c.FuelCache = &FuelCacheConfig{}
	}
	if c.FuelCache.TTL <= 0 {
		c.FuelCache.TTL = 24 * time.Hour
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
