package collect

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"

	"github.com/tverano/solarscout/internal/contracts"
	"github.com/tverano/solarscout/pkg/logger"
)

// SkipTracer finds contact information for property owners. Contact
// records are synthesized deterministically per property until a real
// skip tracing provider is wired in; validation of the resulting phone
// numbers and emails is real.
type SkipTracer struct {
	logger *logger.Logger
}

// NewSkipTracer creates a tracer.
func NewSkipTracer(log *logger.Logger) *SkipTracer {
	return &SkipTracer{logger: log}
}

var (
	firstNames = []string{
		"James", "John", "Robert", "Michael", "William", "David", "Richard",
		"Joseph", "Thomas", "Charles", "Mary", "Patricia", "Jennifer", "Linda",
		"Elizabeth", "Barbara", "Susan", "Jessica", "Sarah", "Karen",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Jones", "Brown", "Davis", "Miller",
		"Wilson", "Moore", "Taylor", "Anderson", "Thomas", "Jackson", "White",
		"Harris", "Martin", "Thompson", "Garcia", "Martinez", "Robinson",
	}
	texasAreaCodes = []string{
		"512", "737", "214", "469", "972", "713", "281", "832", "210", "830",
		"915", "430", "903", "806", "325", "361", "409", "432", "936", "956",
	}
)

// TraceOwner finds the owner contact record for a property.
func (t *SkipTracer) TraceOwner(ctx context.Context, property *contracts.Property) (*contracts.Owner, error) {
	if property == nil {
		return nil, fmt.Errorf("no property data")
	}

	t.logger.WithFields(map[string]interface{}{
		"address": property.AddressLine1,
		"city":    property.City,
	}).Info("Tracing property owner")

	rng := seededRand("owner", property.AddressLine1, property.City, property.ZipCode)

	firstName := pick(rng, firstNames)
	lastName := pick(rng, lastNames)

	emailPatterns := []string{
		fmt.Sprintf("%s.%s@gmail.com", strings.ToLower(firstName), strings.ToLower(lastName)),
		fmt.Sprintf("%s%s@yahoo.com", strings.ToLower(firstName), strings.ToLower(lastName)),
		fmt.Sprintf("%s%s@outlook.com", strings.ToLower(firstName[:1]), strings.ToLower(lastName)),
		fmt.Sprintf("%s%d@hotmail.com", strings.ToLower(lastName), between(rng, 1, 99)),
	}
	email := pick(rng, emailPatterns)

	phone := fmt.Sprintf("%s-%d-%d", pick(rng, texasAreaCodes), between(rng, 200, 999), between(rng, 1000, 9999))

	return &contracts.Owner{
		HomeownerID:     uuid.New().String(),
		PropertyID:      property.PropertyID,
		FirstName:       contracts.String(firstName),
		LastName:        contracts.String(lastName),
		Email:           contracts.String(email),
		Phone:           contracts.String(phone),
		OwnershipYears:  contracts.Float64(float64(between(rng, 1, 20))),
		DoNotCall:       contracts.Bool(t.CheckDoNotCall(phone)),
		SkipTraceStatus: "completed",
		DataSource:      "mock_skip_trace",
	}, nil
}

// BatchTrace runs TraceOwner over a set of properties, dropping
// failures.
func (t *SkipTracer) BatchTrace(ctx context.Context, properties []*contracts.Property) []*contracts.Owner {
	t.logger.WithField("count", len(properties)).Info("Batch tracing properties")

	owners := make([]*contracts.Owner, 0, len(properties))
	for _, property := range properties {
		owner, err := t.TraceOwner(ctx, property)
		if err != nil {
			continue
		}
		owners = append(owners, owner)
	}
	return owners
}

// CheckDoNotCall reports whether a number is on the do-not-call
// registry. Registry access is not wired in; roughly a fifth of numbers
// report as listed, stable per number.
func (t *SkipTracer) CheckDoNotCall(phone string) bool {
	rng := seededRand("dnc", phone)
	return chance(rng, 0.2)
}

// PhoneValidation is the result of validating one phone number.
type PhoneValidation struct {
	Phone     string `json:"phone"`
	Valid     bool   `json:"valid"`
	E164      string `json:"e164,omitempty"`
	National  string `json:"national,omitempty"`
	DoNotCall bool   `json:"do_not_call"`
}

// ValidatePhone parses and validates a phone number as a US number.
func (t *SkipTracer) ValidatePhone(phone string) PhoneValidation {
	result := PhoneValidation{Phone: phone}

	parsed, err := phonenumbers.Parse(phone, "US")
	if err != nil {
		return result
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return result
	}

	result.Valid = true
	result.E164 = phonenumbers.Format(parsed, phonenumbers.E164)
	result.National = phonenumbers.Format(parsed, phonenumbers.NATIONAL)
	result.DoNotCall = t.CheckDoNotCall(result.E164)
	return result
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// ValidateEmail reports whether an email address is plausibly valid.
func (t *SkipTracer) ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}
