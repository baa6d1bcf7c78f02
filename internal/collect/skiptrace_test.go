package collect

import (
	"context"
	"testing"

	"github.com/tverano/solarscout/internal/contracts"
	"github.com/tverano/solarscout/pkg/logger"
)

func newTestTracer() *SkipTracer {
	return NewSkipTracer(logger.NewNop())
}

func traceProperty() *contracts.Property {
	return &contracts.Property{
		PropertyID:   "PROP-000042",
		AddressLine1: "1200 Barton Springs Rd",
		City:         "Austin",
		State:        "TX",
		ZipCode:      "78704",
	}
}

func TestTraceOwner(t *testing.T) {
	tracer := newTestTracer()
	ctx := context.Background()

	owner, err := tracer.TraceOwner(ctx, traceProperty())
	if err != nil {
		t.Fatalf("TraceOwner failed: %v", err)
	}

	if owner.PropertyID != "PROP-000042" {
		t.Errorf("property id not carried through: %s", owner.PropertyID)
	}
	if owner.HomeownerID == "" {
		t.Error("expected generated homeowner id")
	}
	if owner.FirstName == nil || owner.LastName == nil || owner.Email == nil || owner.Phone == nil {
		t.Fatal("expected complete contact record")
	}
	if owner.SkipTraceStatus != "completed" {
		t.Errorf("status: got %q, want completed", owner.SkipTraceStatus)
	}
	if !tracer.ValidateEmail(*owner.Email) {
		t.Errorf("generated email should validate: %s", *owner.Email)
	}
}

func TestTraceOwner_Deterministic(t *testing.T) {
	tracer := newTestTracer()
	ctx := context.Background()

	first, err := tracer.TraceOwner(ctx, traceProperty())
	if err != nil {
		t.Fatalf("TraceOwner failed: %v", err)
	}
	second, err := tracer.TraceOwner(ctx, traceProperty())
	if err != nil {
		t.Fatalf("TraceOwner failed: %v", err)
	}

	if *first.FirstName != *second.FirstName || *first.LastName != *second.LastName {
		t.Error("names should be stable per address")
	}
	if *first.Phone != *second.Phone || *first.Email != *second.Email {
		t.Error("contact details should be stable per address")
	}
	if *first.OwnershipYears != *second.OwnershipYears || *first.DoNotCall != *second.DoNotCall {
		t.Error("ownership and DNC should be stable per address")
	}

	// A different address produces a different record id either way.
	if first.HomeownerID == second.HomeownerID {
		t.Error("homeowner ids should be unique per trace")
	}
}

func TestTraceOwner_NilProperty(t *testing.T) {
	tracer := newTestTracer()

	if _, err := tracer.TraceOwner(context.Background(), nil); err == nil {
		t.Error("expected error for nil property")
	}
}

func TestBatchTrace(t *testing.T) {
	tracer := newTestTracer()

	properties := []*contracts.Property{
		traceProperty(),
		nil, // dropped, not fatal
		{PropertyID: "PROP-000043", AddressLine1: "77 Oak Ln", City: "El Paso", ZipCode: "79901"},
	}

	owners := tracer.BatchTrace(context.Background(), properties)
	if len(owners) != 2 {
		t.Fatalf("expected 2 owners, got %d", len(owners))
	}
	if owners[0].PropertyID != "PROP-000042" || owners[1].PropertyID != "PROP-000043" {
		t.Error("owners out of order or misattributed")
	}
}

func TestCheckDoNotCall_Stable(t *testing.T) {
	tracer := newTestTracer()

	for _, phone := range []string{"+15124721234", "+12145550199", "+19155550123"} {
		first := tracer.CheckDoNotCall(phone)
		second := tracer.CheckDoNotCall(phone)
		if first != second {
			t.Errorf("DNC flag for %s should be stable", phone)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	tracer := newTestTracer()

	valid := tracer.ValidatePhone("512-472-1234")
	if !valid.Valid {
		t.Fatal("expected valid number")
	}
	if valid.E164 != "+15124721234" {
		t.Errorf("e164: got %q, want +15124721234", valid.E164)
	}
	if valid.National != "(512) 472-1234" {
		t.Errorf("national: got %q, want (512) 472-1234", valid.National)
	}

	for _, phone := range []string{"123", "not a phone", ""} {
		result := tracer.ValidatePhone(phone)
		if result.Valid {
			t.Errorf("expected %q to be invalid", phone)
		}
		if result.E164 != "" {
			t.Errorf("invalid number should have no e164: %q", result.E164)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	tracer := newTestTracer()

	valid := []string{"john.smith@gmail.com", "smith42@hotmail.com", "j+leads@example.co"}
	for _, email := range valid {
		if !tracer.ValidateEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}

	invalid := []string{"", "no-at.com", "two@@example.com", "spaces in@example.com"}
	for _, email := range invalid {
		if tracer.ValidateEmail(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}
