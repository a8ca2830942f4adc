package postgresadapter

import (
	"reflect"
	"strings"
	"testing"
)

func TestDigitalAuditModelDeclaresActiveSlotIndex(t *testing.T) {
	field, ok := reflect.TypeOf(digitalAuditModel{}).FieldByName("VettingID")
	if !ok {
		t.Fatalf("vetting_id column missing from the audit model")
	}
	tag := field.Tag.Get("gorm")
	if !strings.Contains(tag, "idx_digital_audits_active") || !strings.Contains(tag, "unique") {
		t.Fatalf("expected the partial unique index on vetting_id, got %q", tag)
	}
	if !strings.Contains(tag, "where:") {
		t.Fatalf("the active-slot index must be partial over active statuses, got %q", tag)
	}
}
