package contracts

import "time"

// Records exchanged between collectors, engines, and repositories. Every
// field that may be absent from a source record is a pointer; engines
// substitute documented defaults for nil, never errors.

// Property holds property attributes from county records or CSV import.
type Property struct {
	PropertyID   string `json:"property_id"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	City         string `json:"city"`
	County       string `json:"county,omitempty"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	PropertyType         *string  `json:"property_type,omitempty"` // Single-Family, Multi-Family, Condo, ...
	YearBuilt            *int     `json:"year_built,omitempty"`
	SquareFootage        *float64 `json:"square_footage,omitempty"`
	Bedrooms             *int     `json:"bedrooms,omitempty"`
	Bathrooms            *float64 `json:"bathrooms,omitempty"`
	LotSize              *float64 `json:"lot_size,omitempty"`
	AssessedValue        *float64 `json:"assessed_value,omitempty"`
	LastSaleDate         *string  `json:"last_sale_date,omitempty"`
	LastSalePrice        *float64 `json:"last_sale_price,omitempty"`
	IsOwnerOccupied      *bool    `json:"is_owner_occupied,omitempty"`
	HasSolarInstallation *bool    `json:"has_solar_installation,omitempty"`
	HasSolarPermit       *bool    `json:"has_solar_permit,omitempty"`

	DataSource  string    `json:"data_source,omitempty"`
	LastUpdated time.Time `json:"last_updated,omitempty"`
}

// Utility holds utility rate attributes for a property.
type Utility struct {
	UtilityID  string `json:"utility_id,omitempty"`
	PropertyID string `json:"property_id,omitempty"`

	Provider        *string  `json:"utility_provider,omitempty"`
	RatePlan        *string  `json:"utility_rate_plan,omitempty"`
	ResidentialRate *float64 `json:"residential_rate,omitempty"` // $/kWh
	HasNetMetering  *bool    `json:"has_net_metering,omitempty"`
	NetMeteringRate *float64 `json:"net_metering_rate,omitempty"`

	// Filled in by the scoring service when absent.
	EstimatedMonthlyBill *float64 `json:"estimated_monthly_bill,omitempty"`
	EstimatedAnnualUsage *float64 `json:"estimated_annual_usage,omitempty"`

	DataSource string `json:"data_source,omitempty"`
}

// Roof holds roof geometry and condition attributes.
type Roof struct {
	RoofID     string `json:"roof_id,omitempty"`
	PropertyID string `json:"property_id,omitempty"`

	RoofType           *string  `json:"roof_type,omitempty"`
	RoofAge            *int     `json:"roof_age,omitempty"`
	RoofCondition      *string  `json:"roof_condition,omitempty"` // excellent, good, fair, poor, very poor
	TotalRoofArea      *float64 `json:"total_roof_area,omitempty"`
	UsableRoofArea     *float64 `json:"usable_roof_area,omitempty"`
	PrimaryOrientation *string  `json:"primary_orientation,omitempty"` // N, NE, E, SE, S, SW, W, NW
	Azimuth            *float64 `json:"azimuth,omitempty"`             // degrees, 0=north, 180=south
	Pitch              *float64 `json:"pitch,omitempty"`               // degrees from horizontal
	ShadingPercentage  *float64 `json:"shading_percentage,omitempty"`  // 0-100

	EstimatedSolarPotential *float64 `json:"estimated_solar_potential,omitempty"`

	DataSource string `json:"data_source,omitempty"`
}

// Owner holds homeowner contact attributes from skip tracing.
type Owner struct {
	HomeownerID string `json:"homeowner_id,omitempty"`
	PropertyID  string `json:"property_id,omitempty"`

	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`

	OwnershipYears  *float64 `json:"ownership_years,omitempty"`
	DoNotCall       *bool    `json:"do_not_call,omitempty"`
	SkipTraceStatus string   `json:"skip_trace_status,omitempty"`

	DataSource string `json:"data_source,omitempty"`
}

// LeadRecord bundles everything known about a single lead. Collectors
// produce it, the scoring service consumes it.
type LeadRecord struct {
	Property *Property `json:"property_data"`
	Utility  *Utility  `json:"utility_data,omitempty"`
	Roof     *Roof     `json:"roof_data,omitempty"`
	Owner    *Owner    `json:"owner_data,omitempty"`
}

// Cardinal orientations recognized by the roof engine and collectors.
const (
	OrientationN  = "N"
	OrientationNE = "NE"
	OrientationE  = "E"
	OrientationSE = "SE"
	OrientationS  = "S"
	OrientationSW = "SW"
	OrientationW  = "W"
	OrientationNW = "NW"
)

// Property types with scoring significance.
const (
	PropertyTypeSingleFamily = "Single-Family"
	PropertyTypeMultiFamily  = "Multi-Family"
)
