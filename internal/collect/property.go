package collect

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/tverano/solarscout/internal/contracts"
	"github.com/tverano/solarscout/pkg/httputil"
	"github.com/tverano/solarscout/pkg/logger"
	"github.com/tverano/solarscout/pkg/redis"
)

// PropertyCollector fetches property records from a county assessor
// endpoint. Without a configured endpoint it falls back to seeded mock
// data so the rest of the pipeline stays exercisable offline.
type PropertyCollector struct {
	client  *httputil.Client
	cache   *redis.Cache
	baseURL string
	logger  *logger.Logger
}

// NewPropertyCollector creates a collector. baseURL may be empty, which
// disables live lookups entirely.
func NewPropertyCollector(client *httputil.Client, cache *redis.Cache, baseURL string, log *logger.Logger) *PropertyCollector {
	return &PropertyCollector{
		client:  client,
		cache:   cache,
		baseURL: baseURL,
		logger:  log,
	}
}

// FetchByAddress fetches a single property record. Live lookups are
// cached by address hash for a week; any failure degrades to mock data
// rather than stopping the pipeline.
func (c *PropertyCollector) FetchByAddress(ctx context.Context, address, city, state, zipCode string) (*contracts.Property, error) {
	if address == "" || zipCode == "" {
		return nil, fmt.Errorf("address and zip code are required")
	}

	c.logger.WithFields(map[string]interface{}{
		"address": address,
		"city":    city,
		"zip":     zipCode,
	}).Info("Fetching property data")

	if c.baseURL != "" {
		if property, err := c.fetchFromAssessor(ctx, address, city, zipCode); err == nil {
			property.State = state
			return property, nil
		} else {
			c.logger.WithError(err).Warn("Assessor lookup failed, using mock property data")
		}
	}

	return c.mockProperty(address, city, state, zipCode), nil
}

// FetchByZip fetches up to limit properties in a ZIP code.
func (c *PropertyCollector) FetchByZip(ctx context.Context, zipCode string, limit int) ([]*contracts.Property, error) {
	if zipCode == "" {
		return nil, fmt.Errorf("zip code is required")
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	c.logger.WithFields(map[string]interface{}{
		"zip":   zipCode,
		"limit": limit,
	}).Info("Fetching properties by ZIP")

	count := limit
	if count > 10 {
		count = 10
	}

	properties := make([]*contracts.Property, 0, count)
	for i := 1; i <= count; i++ {
		property, err := c.FetchByAddress(ctx, fmt.Sprintf("%d Main St", i), "Austin", "TX", zipCode)
		if err != nil {
			continue
		}
		properties = append(properties, property)
	}
	return properties, nil
}

func (c *PropertyCollector) fetchFromAssessor(ctx context.Context, address, city, zipCode string) (*contracts.Property, error) {
	key := redis.AssessorKey(addressHash(address, city, zipCode))

	var cached contracts.Property
	if c.cache != nil {
		if ok, _ := c.cache.Get(ctx, key, &cached); ok {
			return &cached, nil
		}
	}

	u := fmt.Sprintf("%s/property/search?street=%s&city=%s&zip=%s",
		c.baseURL, url.QueryEscape(address), url.QueryEscape(city), url.QueryEscape(zipCode))

	resp, err := c.client.Get(ctx, u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("assessor returned status %d", resp.StatusCode)
	}

	property, err := ParseAssessorPage(resp.Body)
	if err != nil {
		return nil, err
	}

	property.PropertyID = uuid.New().String()
	property.AddressLine1 = address
	property.City = city
	property.ZipCode = zipCode
	property.DataSource = "county_assessor"
	property.LastUpdated = time.Now()

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, property, redis.TTLAssessor); err != nil {
			c.logger.WithError(err).Warn("Failed to cache assessor result")
		}
	}

	return property, nil
}

// EstimateValue gives a rough market value from square footage and age
// when the assessed value is missing. Base $150/sq ft, discounted up to
// half for age.
func (c *PropertyCollector) EstimateValue(property *contracts.Property) float64 {
	if property == nil || property.SquareFootage == nil {
		return 0
	}

	yearBuilt := 2000
	if property.YearBuilt != nil {
		yearBuilt = *property.YearBuilt
	}

	ageFactor := 1.0 - float64(time.Now().Year()-yearBuilt)/100
	if ageFactor < 0.5 {
		ageFactor = 0.5
	}
	if ageFactor > 1.0 {
		ageFactor = 1.0
	}

	return *property.SquareFootage * 150 * ageFactor
}

func (c *PropertyCollector) mockProperty(address, city, state, zipCode string) *contracts.Property {
	rng := seededRand("property", address, city, zipCode)

	squareFootage := float64(between(rng, 1200, 3500))

	return &contracts.Property{
		PropertyID:           uuid.New().String(),
		AddressLine1:         address,
		City:                 city,
		County:               "Travis",
		State:                state,
		ZipCode:              zipCode,
		Latitude:             contracts.Float64(30.2672 + uniform(rng, -0.1, 0.1)),
		Longitude:            contracts.Float64(-97.7431 + uniform(rng, -0.1, 0.1)),
		PropertyType:         contracts.String(contracts.PropertyTypeSingleFamily),
		YearBuilt:            contracts.Int(between(rng, 1950, 2020)),
		SquareFootage:        contracts.Float64(squareFootage),
		Bedrooms:             contracts.Int(between(rng, 2, 5)),
		Bathrooms:            contracts.Float64(pick(rng, []float64{1.0, 1.5, 2.0, 2.5, 3.0, 3.5, 4.0})),
		LotSize:              contracts.Float64(float64(between(rng, 5000, 15000))),
		AssessedValue:        contracts.Float64(squareFootage * float64(between(rng, 100, 300))),
		IsOwnerOccupied:      contracts.Bool(chance(rng, 0.75)),
		HasSolarInstallation: contracts.Bool(chance(rng, 0.05)),
		HasSolarPermit:       contracts.Bool(chance(rng, 0.1)),
		DataSource:           "mock",
		LastUpdated:          time.Now(),
	}
}

func addressHash(address, city, zipCode string) string {
	sum := sha256.Sum256([]byte(address + "|" + city + "|" + zipCode))
	return hex.EncodeToString(sum[:8])
}
