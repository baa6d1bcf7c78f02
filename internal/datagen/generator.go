package datagen

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/tverano/solarscout/internal/contracts"
	"github.com/tverano/solarscout/pkg/logger"
)

// Generator produces realistic synthetic lead data for demos and load
// testing. All output is driven by the seed, so a fixed seed reproduces
// the exact same dataset.
type Generator struct {
	rng    *rand.Rand
	now    time.Time
	logger *logger.Logger
}

// NewGenerator creates a generator from a seed.
func NewGenerator(seed int64, log *logger.Logger) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		now:    time.Now(),
		logger: log,
	}
}

type city struct {
	Name     string
	Lat, Lng float64
	ZipCodes []string
}

var texasCities = []city{
	{"Austin", 30.2672, -97.7431, []string{"78701", "78702", "78703", "78704", "78705"}},
	{"Houston", 29.7604, -95.3698, []string{"77001", "77002", "77003", "77004", "77005"}},
	{"Dallas", 32.7767, -96.7970, []string{"75201", "75202", "75203", "75204", "75205"}},
	{"San Antonio", 29.4241, -98.4936, []string{"78201", "78202", "78203", "78204", "78205"}},
	{"Fort Worth", 32.7555, -97.3308, []string{"76101", "76102", "76103", "76104", "76105"}},
	{"El Paso", 31.7619, -106.4850, []string{"79901", "79902", "79903", "79904", "79905"}},
}

type provider struct {
	Name        string
	Cities      []string
	Rate        float64
	NetMetering bool
}

var utilityProviders = []provider{
	{"Austin Energy", []string{"Austin"}, 0.12, true},
	{"CenterPoint Energy", []string{"Houston"}, 0.115, true},
	{"Oncor Electric", []string{"Dallas", "Fort Worth"}, 0.11, false},
	{"CPS Energy", []string{"San Antonio"}, 0.125, true},
	{"El Paso Electric", []string{"El Paso"}, 0.13, false},
}

var (
	streetNames = []string{
		"Main", "Oak", "Pine", "Maple", "Cedar", "Elm", "Washington", "Lake", "Hill",
		"River", "View", "Park", "Spring", "North", "South", "East", "West", "Center",
		"Church", "Mill", "Walnut", "Ridge", "Valley", "Meadow", "Forest", "Sunset",
	}
	streetTypes = []string{"St", "Ave", "Blvd", "Dr", "Ln", "Rd", "Way", "Pl", "Ct", "Ter"}

	firstNames = []string{
		"James", "John", "Robert", "Michael", "William", "David", "Richard", "Joseph", "Thomas", "Charles",
		"Mary", "Patricia", "Jennifer", "Linda", "Elizabeth", "Barbara", "Susan", "Jessica", "Sarah", "Karen",
		"Jose", "Luis", "Carlos", "Juan", "Miguel", "Maria", "Ana", "Rosa", "Guadalupe", "Elena",
		"Wei", "Li", "Min", "Yan", "Ling", "Yong", "Jie", "Xin", "Hui", "Ming",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Jones", "Brown", "Davis", "Miller", "Wilson", "Moore", "Taylor",
		"Anderson", "Thomas", "Jackson", "White", "Harris", "Martin", "Thompson", "Garcia", "Martinez", "Robinson",
		"Rodriguez", "Hernandez", "Lopez", "Gonzalez", "Perez", "Sanchez", "Ramirez", "Torres", "Flores", "Rivera",
		"Wang", "Li", "Zhang", "Liu", "Chen", "Yang", "Huang", "Zhao", "Wu", "Zhou",
	}
	emailDomains = []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "aol.com", "icloud.com"}

	roofTypes    = []string{"Asphalt Shingle", "Metal", "Tile", "Slate", "Flat/Built-Up"}
	orientations = []string{
		contracts.OrientationN, contracts.OrientationNE, contracts.OrientationE,
		contracts.OrientationSE, contracts.OrientationS, contracts.OrientationSW,
		contracts.OrientationW, contracts.OrientationNW,
	}
	cardinalAzimuths = map[string]float64{
		contracts.OrientationN: 0, contracts.OrientationNE: 45, contracts.OrientationE: 90,
		contracts.OrientationSE: 135, contracts.OrientationS: 180, contracts.OrientationSW: 225,
		contracts.OrientationW: 270, contracts.OrientationNW: 315,
	}
)

// GenerateProperties produces count synthetic Texas properties.
func (g *Generator) GenerateProperties(count int) []*contracts.Property {
	g.logger.WithField("count", count).Info("Generating sample properties")

	properties := make([]*contracts.Property, 0, count)
	for i := 0; i < count; i++ {
		c := texasCities[g.rng.Intn(len(texasCities))]

		yearBuilt := g.intBetween(1950, 2020)
		squareFootage := float64(g.intBetween(1000, 4000))

		baseValue := squareFootage * 100
		ageFactor := 1 - float64(g.now.Year()-yearBuilt)/100
		if ageFactor < 0.5 {
			ageFactor = 0.5
		}
		locationFactor := 1.0
		switch c.Name {
		case "Austin", "Dallas":
			locationFactor = 1.3
		case "Houston", "San Antonio":
			locationFactor = 1.1
		}

		propertyType := contracts.PropertyTypeSingleFamily
		if g.rng.Float64() >= 0.9 {
			propertyType = contracts.PropertyTypeMultiFamily
		}

		lastSale := g.now.AddDate(0, 0, -g.intBetween(30, 3650))

		properties = append(properties, &contracts.Property{
			PropertyID:      fmt.Sprintf("PROP-%06d", i+1),
			AddressLine1:    fmt.Sprintf("%d %s %s", g.intBetween(100, 9999), g.pickString(streetNames), g.pickString(streetTypes)),
			City:            c.Name,
			State:           "TX",
			ZipCode:         c.ZipCodes[g.rng.Intn(len(c.ZipCodes))],
			Latitude:        contracts.Float64(c.Lat + g.uniform(-0.05, 0.05)),
			Longitude:       contracts.Float64(c.Lng + g.uniform(-0.05, 0.05)),
			PropertyType:    contracts.String(propertyType),
			YearBuilt:       contracts.Int(yearBuilt),
			SquareFootage:   contracts.Float64(squareFootage),
			Bedrooms:        contracts.Int(g.intBetween(2, 5)),
			Bathrooms:       contracts.Float64(float64(g.intBetween(1, 4))),
			AssessedValue:   contracts.Float64(math.Round(baseValue * ageFactor * locationFactor)),
			IsOwnerOccupied: contracts.Bool(g.rng.Float64() < 0.8),
			HasSolarPermit:  contracts.Bool(g.rng.Float64() < 0.05),
			LastSaleDate:    contracts.String(lastSale.Format("2006-01-02")),
			DataSource:      "datagen",
			LastUpdated:     g.now,
		})
	}
	return properties
}

// GenerateOwners produces owner records for the owner-occupied subset.
func (g *Generator) GenerateOwners(properties []*contracts.Property) []*contracts.Owner {
	g.logger.WithField("count", len(properties)).Info("Generating homeowner data")

	owners := make([]*contracts.Owner, 0, len(properties))
	for _, property := range properties {
		if property.IsOwnerOccupied != nil && !*property.IsOwnerOccupied {
			continue
		}

		firstName := g.pickString(firstNames)
		lastName := g.pickString(lastNames)

		ownershipYears := 5.0
		if property.LastSaleDate != nil {
			if saleDate, err := time.Parse("2006-01-02", *property.LastSaleDate); err == nil {
				ownershipYears = math.Round(g.now.Sub(saleDate).Hours()/24/365*10) / 10
			}
		}

		owners = append(owners, &contracts.Owner{
			PropertyID:      property.PropertyID,
			FirstName:       contracts.String(firstName),
			LastName:        contracts.String(lastName),
			Phone:           contracts.String(fmt.Sprintf("(%d) %d-%d", g.intBetween(200, 999), g.intBetween(200, 999), g.intBetween(1000, 9999))),
			Email:           contracts.String(fmt.Sprintf("%s.%s@%s", strings.ToLower(firstName), strings.ToLower(lastName), g.pickString(emailDomains))),
			OwnershipYears:  contracts.Float64(ownershipYears),
			DoNotCall:       contracts.Bool(g.rng.Float64() < 0.1),
			SkipTraceStatus: "completed",
			DataSource:      "datagen",
		})
	}
	return owners
}

// GenerateRoofs produces roof records for each property. Age, pitch,
// orientation, and shading distributions follow the property's vintage
// and city.
func (g *Generator) GenerateRoofs(properties []*contracts.Property) []*contracts.Roof {
	g.logger.WithField("count", len(properties)).Info("Generating roof data")

	roofs := make([]*contracts.Roof, 0, len(properties))
	for _, property := range properties {
		yearBuilt := 2000
		if property.YearBuilt != nil {
			yearBuilt = *property.YearBuilt
		}
		squareFootage := 2000.0
		if property.SquareFootage != nil {
			squareFootage = *property.SquareFootage
		}

		propertyAge := g.now.Year() - yearBuilt
		roofAge := g.intBetween(0, 25)
		if roofAge > propertyAge {
			roofAge = propertyAge
		}

		totalArea := squareFootage * g.uniform(1.1, 1.4)

		// Newer construction skews south-facing.
		weights := []float64{0.125, 0.125, 0.125, 0.125, 0.125, 0.125, 0.125, 0.125}
		if yearBuilt > 2000 {
			weights = []float64{0.05, 0.05, 0.05, 0.15, 0.4, 0.15, 0.05, 0.1}
		}
		orientation := g.pickWeighted(orientations, weights)
		azimuth := cardinalAzimuths[orientation] + float64(g.intBetween(-10, 10))

		pitch := float64(g.intBetween(15, 30))
		if property.City == "Dallas" || property.City == "Fort Worth" {
			pitch = float64(g.intBetween(20, 40))
		}

		usableFactor := 0.7
		switch orientation {
		case contracts.OrientationS, contracts.OrientationSE, contracts.OrientationSW:
			usableFactor += 0.1
		}
		if roofAge < 10 {
			usableFactor += 0.1
		}

		shading := float64(g.intBetween(5, 25))
		if yearBuilt < 1980 {
			shading = float64(g.intBetween(10, 40))
		}

		var condition string
		switch {
		case roofAge < 3:
			condition = "excellent"
		case roofAge < 8:
			condition = "good"
		case roofAge < 15:
			condition = "fair"
		case roofAge < 20:
			condition = "poor"
		default:
			condition = "very poor"
		}

		roofs = append(roofs, &contracts.Roof{
			PropertyID:         property.PropertyID,
			RoofType:           contracts.String(g.pickString(roofTypes)),
			RoofAge:            contracts.Int(roofAge),
			RoofCondition:      contracts.String(condition),
			TotalRoofArea:      contracts.Float64(math.Round(totalArea)),
			UsableRoofArea:     contracts.Float64(math.Round(totalArea * usableFactor)),
			PrimaryOrientation: contracts.String(orientation),
			Azimuth:            contracts.Float64(azimuth),
			Pitch:              contracts.Float64(pitch),
			ShadingPercentage:  contracts.Float64(shading),
			DataSource:         "datagen",
		})
	}
	return roofs
}

// GenerateUtilities produces utility records for each property, with the
// provider assigned by city and the bill scaled by size, age, and
// season.
func (g *Generator) GenerateUtilities(properties []*contracts.Property) []*contracts.Utility {
	g.logger.WithField("count", len(properties)).Info("Generating utility data")

	utilities := make([]*contracts.Utility, 0, len(properties))
	for _, property := range properties {
		p := g.providerForCity(property.City)

		rate := p.Rate * g.uniform(0.95, 1.05)

		squareFootage := 2000.0
		if property.SquareFootage != nil {
			squareFootage = *property.SquareFootage
		}
		yearBuilt := 2000
		if property.YearBuilt != nil {
			yearBuilt = *property.YearBuilt
		}

		baseBill := squareFootage * 0.1
		ageFactor := 1.0
		if extra := float64(g.now.Year()-yearBuilt-10) / 100; extra > 0 {
			ageFactor += extra
		}

		seasonalFactor := 1.0
		switch g.now.Month() {
		case time.June, time.July, time.August, time.September:
			seasonalFactor = 1.3
		case time.December, time.January, time.February:
			seasonalFactor = 1.1
		}

		monthlyBill := math.Round(baseBill*ageFactor*seasonalFactor*100) / 100

		utility := &contracts.Utility{
			PropertyID:           property.PropertyID,
			Provider:             contracts.String(p.Name),
			RatePlan:             contracts.String("Standard Residential"),
			ResidentialRate:      contracts.Float64(rate),
			HasNetMetering:       contracts.Bool(p.NetMetering),
			EstimatedMonthlyBill: contracts.Float64(monthlyBill),
			EstimatedAnnualUsage: contracts.Float64(math.Round(monthlyBill * 12 / rate)),
			DataSource:           "datagen",
		}
		if p.NetMetering {
			utility.NetMeteringRate = contracts.Float64(rate * 0.8)
		}
		utilities = append(utilities, utility)
	}
	return utilities
}

// GenerateLeadRecords produces count fully-populated lead records.
func (g *Generator) GenerateLeadRecords(count int) []*contracts.LeadRecord {
	properties := g.GenerateProperties(count)
	owners := g.GenerateOwners(properties)
	roofs := g.GenerateRoofs(properties)
	utilities := g.GenerateUtilities(properties)

	ownersByProperty := make(map[string]*contracts.Owner, len(owners))
	for _, owner := range owners {
		ownersByProperty[owner.PropertyID] = owner
	}

	leads := make([]*contracts.LeadRecord, 0, count)
	for i, property := range properties {
		leads = append(leads, &contracts.LeadRecord{
			Property: property,
			Utility:  utilities[i],
			Roof:     roofs[i],
			Owner:    ownersByProperty[property.PropertyID],
		})
	}
	return leads
}

// SaveJSON writes any generated dataset to an indented JSON file.
func (g *Generator) SaveJSON(data interface{}, path string) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}

	g.logger.WithField("path", path).Info("Saved generated dataset")
	return nil
}

func (g *Generator) providerForCity(cityName string) provider {
	for _, p := range utilityProviders {
		for _, c := range p.Cities {
			if c == cityName {
				return p
			}
		}
	}
	return utilityProviders[g.rng.Intn(len(utilityProviders))]
}

func (g *Generator) intBetween(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func (g *Generator) pickString(choices []string) string {
	return choices[g.rng.Intn(len(choices))]
}

func (g *Generator) pickWeighted(choices []string, weights []float64) string {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := g.rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return choices[i]
		}
	}
	return choices[len(choices)-1]
}
