package billing

// Config holds all tunables for bill estimation. Loaded once at
// construction and treated as read-only afterwards.
type Config struct {
	// Base monthly consumption by home size tier (kWh/month).
	BaseConsumption BaseConsumption

	// Seasonal usage factors relative to the annual average, keyed 1-12.
	MonthlyFactors map[int]float64

	// Climate zones checked in order; the first ZIP prefix match wins.
	ClimateZones []ClimateZone

	// Rate applied when no utility record is available ($/kWh).
	DefaultRate float64

	// Per-region residential rates for ZIP-only estimates ($/kWh).
	RegionRates map[string]float64

	// Region assumed when a ZIP matches no climate zone.
	DefaultRegion string
}

// BaseConsumption defines the per-tier base usage values.
type BaseConsumption struct {
	Small     float64 // <1200 sq ft
	Medium    float64 // 1200-2500 sq ft
	Large     float64 // 2500-3500 sq ft
	VeryLarge float64 // >3500 sq ft
}

// ClimateZone maps ZIP prefixes to a usage multiplier.
type ClimateZone struct {
	Name        string
	BaseFactor  float64
	ZipPrefixes []string
}

// DefaultConfig returns the Texas defaults.
func DefaultConfig() Config {
	return Config{
		BaseConsumption: BaseConsumption{
			Small:     700,
			Medium:    1000,
			Large:     1300,
			VeryLarge: 1600,
		},
		MonthlyFactors: map[int]float64{
			1:  0.85,
			2:  0.80,
			3:  0.75,
			4:  0.80,
			5:  1.00,
			6:  1.30,
			7:  1.50,
			8:  1.50,
			9:  1.20,
			10: 0.90,
			11: 0.75,
			12: 0.85,
		},
		ClimateZones: []ClimateZone{
			{
				Name:       "north",
				BaseFactor: 1.0,
				ZipPrefixes: []string{
					"750", "751", "752", "753", "754", "755", "756", "757", "758",
					"759", "760", "761", "762", "763", "764", "765", "766", "767",
				},
			},
			{
				Name:       "central",
				BaseFactor: 1.05,
				ZipPrefixes: []string{
					"768", "769", "770", "771", "772", "773", "774", "775", "776",
					"777", "778", "779", "780", "781", "782", "783", "784", "785",
				},
			},
			{
				Name:       "south",
				BaseFactor: 1.15,
				ZipPrefixes: []string{
					"786", "787", "788", "789", "790", "791", "792", "793", "794",
					"795", "796", "797", "798", "799",
				},
			},
		},
		DefaultRate: 0.12,
		RegionRates: map[string]float64{
			"north":     0.115,
			"central":   0.125,
			"south":     0.135,
			"west":      0.110,
			"panhandle": 0.105,
		},
		DefaultRegion: "central",
	}
}
