package collect

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/tverano/solarscout/internal/contracts"
	"github.com/tverano/solarscout/pkg/logger"
	"github.com/tverano/solarscout/pkg/redis"
)

// NetMeteringPolicy describes a provider's buyback program.
type NetMeteringPolicy struct {
	Available bool    `json:"has_net_metering"`
	Rate      float64 `json:"net_metering_rate"`
	Notes     string  `json:"notes"`
}

// Texas providers with net metering or equivalent buyback programs.
// Providers not listed get the no-program default.
var netMeteringPolicies = map[string]NetMeteringPolicy{
	"Austin Energy": {
		Available: true,
		Rate:      0.097,
		Notes:     "Value of Solar Tariff instead of traditional net metering",
	},
	"CPS Energy": {
		Available: true,
		Rate:      0.09,
		Notes:     "Net billing at avoided cost rate",
	},
	"El Paso Electric": {
		Available: true,
		Rate:      0.08,
		Notes:     "Limited net metering available",
	},
	"Green Mountain Energy": {
		Available: true,
		Rate:      0.11,
		Notes:     "Renewable Rewards buyback program",
	},
}

// UtilityCollector resolves utility providers and rates for a location.
// Rate lookups are cached by ZIP since tariffs change rarely.
type UtilityCollector struct {
	cache  *redis.Cache
	logger *logger.Logger
}

// NewUtilityCollector creates a collector. cache may be nil.
func NewUtilityCollector(cache *redis.Cache, log *logger.Logger) *UtilityCollector {
	return &UtilityCollector{
		cache:  cache,
		logger: log,
	}
}

// FetchRatesByZip returns the utility record for a ZIP code, from cache
// when possible.
func (c *UtilityCollector) FetchRatesByZip(ctx context.Context, zipCode string) (*contracts.Utility, error) {
	if zipCode == "" {
		return nil, fmt.Errorf("zip code is required")
	}

	key := redis.UtilityRateKey(zipCode)
	if c.cache != nil {
		var cached contracts.Utility
		if ok, _ := c.cache.Get(ctx, key, &cached); ok {
			return &cached, nil
		}
	}

	c.logger.WithField("zip", zipCode).Info("Fetching utility rates")

	utility := c.ratesForZip(zipCode)

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, utility, redis.TTLUtilityRates); err != nil {
			c.logger.WithError(err).Warn("Failed to cache utility rates")
		}
	}

	return utility, nil
}

// FetchRatesByLocation returns the utility record for coordinates.
func (c *UtilityCollector) FetchRatesByLocation(ctx context.Context, latitude, longitude float64) (*contracts.Utility, error) {
	c.logger.WithFields(map[string]interface{}{
		"lat": latitude,
		"lon": longitude,
	}).Info("Fetching utility rates by location")

	rng := seededRand("utility", fmt.Sprintf("%.4f,%.4f", latitude, longitude))
	return c.buildUtility(ProviderByLocation(latitude, longitude), rng), nil
}

// NetMetering returns the provider's buyback policy.
func (c *UtilityCollector) NetMetering(provider string) NetMeteringPolicy {
	if policy, ok := netMeteringPolicies[provider]; ok {
		return policy
	}
	return NetMeteringPolicy{Notes: "No net metering program available"}
}

// ProviderByLocation assigns a Texas utility by service-area
// approximation.
func ProviderByLocation(latitude, longitude float64) string {
	switch {
	case latitude > 31.7 && longitude < -106.3:
		return "El Paso Electric"
	case latitude > 32.7 && longitude > -96.8:
		return "Oncor Electric"
	case latitude > 30.2 && longitude > -97.8:
		return "Austin Energy"
	case latitude > 29.5 && longitude > -95.5:
		return "Centerpoint Energy"
	case latitude > 29.3 && longitude > -98.6:
		return "CPS Energy"
	default:
		return "Green Mountain Energy"
	}
}

func (c *UtilityCollector) ratesForZip(zipCode string) *contracts.Utility {
	rng := seededRand("utility", zipCode)

	// ZIP-to-coordinate resolution is out of reach without a geocoder;
	// approximate within the Texas interior.
	latitude := 31.0 + uniform(rng, -3, 3)
	longitude := -100.0 + uniform(rng, -5, 5)

	return c.buildUtility(ProviderByLocation(latitude, longitude), rng)
}

func (c *UtilityCollector) buildUtility(provider string, rng *rand.Rand) *contracts.Utility {
	residentialRate := uniform(rng, 0.09, 0.15)
	policy := c.NetMetering(provider)

	utility := &contracts.Utility{
		Provider:        contracts.String(provider),
		RatePlan:        contracts.String("Standard Residential"),
		ResidentialRate: contracts.Float64(residentialRate),
		HasNetMetering:  contracts.Bool(policy.Available),
		DataSource:      "mock",
	}
	if policy.Available {
		utility.NetMeteringRate = contracts.Float64(policy.Rate)
	}
	return utility
}
