package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tverano/solarscout/internal/contracts"
)

// Integration tests run against a real database when TEST_DATABASE_URL
// is set, for example:
//
//	TEST_DATABASE_URL=postgres://localhost:5432/solarscout_test go test ./internal/store/
func testStore(t *testing.T) *Store {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database integration test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, CreateTables(ctx, pool))
	return New(pool)
}

func testStoreProperty(zipCode string) *contracts.Property {
	return &contracts.Property{
		PropertyID:      uuid.New().String(),
		AddressLine1:    uuid.New().String() + " Congress Ave",
		City:            "Austin",
		State:           "TX",
		ZipCode:         zipCode,
		PropertyType:    contracts.String(contracts.PropertyTypeSingleFamily),
		YearBuilt:       contracts.Int(2005),
		SquareFootage:   contracts.Float64(2100),
		AssessedValue:   contracts.Float64(330000),
		IsOwnerOccupied: contracts.Bool(true),
		DataSource:      "test",
	}
}

func TestLeadLifecycle(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	property := testStoreProperty("78704")
	require.NoError(t, st.Properties.Save(ctx, property))

	lead := &contracts.Lead{
		PropertyID:    property.PropertyID,
		OverallScore:  85,
		Qualification: "excellent",
		Status:        contracts.LeadStatusNew,
	}
	require.NoError(t, st.Leads.Save(ctx, lead))
	require.NotEmpty(t, lead.LeadID, "save should assign a lead id")

	got, err := st.Leads.GetByProperty(ctx, property.PropertyID)
	require.NoError(t, err)
	assert.Equal(t, lead.LeadID, got.LeadID)
	assert.Equal(t, 85, got.OverallScore)
	assert.Equal(t, contracts.LeadStatusNew, got.Status)

	// Re-scoring updates in place instead of inserting a second row.
	lead.OverallScore = 72
	lead.Qualification = "good"
	require.NoError(t, st.Leads.Save(ctx, lead))

	got, err = st.Leads.GetByProperty(ctx, property.PropertyID)
	require.NoError(t, err)
	assert.Equal(t, lead.LeadID, got.LeadID)
	assert.Equal(t, 72, got.OverallScore)

	require.NoError(t, st.Leads.UpdateStatus(ctx, lead.LeadID, contracts.LeadStatusContacted, "left voicemail"))

	got, err = st.Leads.GetByProperty(ctx, property.PropertyID)
	require.NoError(t, err)
	assert.Equal(t, contracts.LeadStatusContacted, got.Status)
	assert.Equal(t, "left voicemail", got.Notes)

	// Empty notes leave the existing ones alone.
	require.NoError(t, st.Leads.UpdateStatus(ctx, lead.LeadID, contracts.LeadStatusQualified, ""))

	got, err = st.Leads.GetByProperty(ctx, property.PropertyID)
	require.NoError(t, err)
	assert.Equal(t, contracts.LeadStatusQualified, got.Status)
	assert.Equal(t, "left voicemail", got.Notes)
}

func TestGetByScore(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	property := testStoreProperty("78745")
	require.NoError(t, st.Properties.Save(ctx, property))

	owner := &contracts.Owner{
		HomeownerID: uuid.New().String(),
		PropertyID:  property.PropertyID,
		FirstName:   contracts.String("Maria"),
		LastName:    contracts.String("Garcia"),
		Phone:       contracts.String("512-472-1234"),
	}
	require.NoError(t, st.Homeowners.Save(ctx, owner))

	lead := &contracts.Lead{
		PropertyID:    property.PropertyID,
		OverallScore:  91,
		Qualification: "excellent",
		Status:        contracts.LeadStatusNew,
	}
	require.NoError(t, st.Leads.Save(ctx, lead))

	leads, err := st.Leads.GetByScore(ctx, 90, 100, 50)
	require.NoError(t, err)

	var found *LeadWithContact
	for _, l := range leads {
		if l.LeadID == lead.LeadID {
			found = l
		}
	}
	require.NotNil(t, found, "saved lead should appear in its score band")
	assert.Equal(t, property.AddressLine1, found.AddressLine1)
	assert.Equal(t, "78745", found.ZipCode)
	require.NotNil(t, found.FirstName)
	assert.Equal(t, "Maria", *found.FirstName)

	// Bands are inclusive and ordered highest first.
	for i := 1; i < len(leads); i++ {
		assert.GreaterOrEqual(t, leads[i-1].OverallScore, leads[i].OverallScore)
	}
}

func TestPropertyRoundTrip(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	property := testStoreProperty("78704")
	require.NoError(t, st.Properties.Save(ctx, property))

	got, err := st.Properties.GetByID(ctx, property.PropertyID)
	require.NoError(t, err)
	assert.Equal(t, property.AddressLine1, got.AddressLine1)
	require.NotNil(t, got.SquareFootage)
	assert.Equal(t, 2100.0, *got.SquareFootage)
	require.NotNil(t, got.IsOwnerOccupied)
	assert.True(t, *got.IsOwnerOccupied)

	zips, err := st.Properties.ListZipCodes(ctx)
	require.NoError(t, err)
	assert.Contains(t, zips, "78704")
}

func TestEnrichmentRoundTrip(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	property := testStoreProperty("78704")
	require.NoError(t, st.Properties.Save(ctx, property))

	utility := &contracts.Utility{
		PropertyID:           property.PropertyID,
		Provider:             contracts.String("Austin Energy"),
		ResidentialRate:      contracts.Float64(0.12),
		EstimatedMonthlyBill: contracts.Float64(185),
		HasNetMetering:       contracts.Bool(true),
		NetMeteringRate:      contracts.Float64(0.097),
		DataSource:           "test",
	}
	require.NoError(t, st.Utilities.Save(ctx, utility))

	roof := &contracts.Roof{
		PropertyID:         property.PropertyID,
		UsableRoofArea:     contracts.Float64(1100),
		PrimaryOrientation: contracts.String(contracts.OrientationS),
		ShadingPercentage:  contracts.Float64(12),
		DataSource:         "test",
	}
	require.NoError(t, st.Roofs.Save(ctx, roof))

	gotUtility, err := st.Utilities.GetByProperty(ctx, property.PropertyID)
	require.NoError(t, err)
	require.NotNil(t, gotUtility.Provider)
	assert.Equal(t, "Austin Energy", *gotUtility.Provider)
	require.NotNil(t, gotUtility.EstimatedMonthlyBill)
	assert.Equal(t, 185.0, *gotUtility.EstimatedMonthlyBill)

	gotRoof, err := st.Roofs.GetByProperty(ctx, property.PropertyID)
	require.NoError(t, err)
	require.NotNil(t, gotRoof.UsableRoofArea)
	assert.Equal(t, 1100.0, *gotRoof.UsableRoofArea)
}
