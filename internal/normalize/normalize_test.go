package normalize

import (
	"reflect"
	"testing"
)

func TestToCanonicalAddsAliases(t *testing.T) {
	n := New()
	in := map[string]any{
		"first_name": "Sana",
		"cardId":     "1111",
		"email":      "sana@robotics.club",
	}

	got, ok := n.ToCanonical(in).(map[string]any)
	if !ok {
		t.Fatalf("expected map result")
	}

	if got["firstName"] != "Sana" {
		t.Errorf("missing camelCase alias: %v", got)
	}
	if got["card_id"] != "1111" {
		t.Errorf("missing snake_case alias: %v", got)
	}
	if got["first_name"] != "Sana" || got["cardId"] != "1111" {
		t.Errorf("originals must survive: %v", got)
	}
	if got["email"] != "sana@robotics.club" {
		t.Errorf("plain key changed: %v", got)
	}
}

func TestToCanonicalOriginalWinsOverAlias(t *testing.T) {
	n := New()
	in := map[string]any{
		"first_name": "Sana",
		"firstName":  "", // derived-alias fodder from an older payload shape
	}

	got := n.ToCanonical(in).(map[string]any)
	if got["firstName"] != "" {
		t.Errorf("existing key was overwritten by derived alias: %v", got)
	}
	if got["first_name"] != "Sana" {
		t.Errorf("original lost: %v", got)
	}
}

func TestToCanonicalIdempotent(t *testing.T) {
	n := New()
	in := map[string]any{
		"user_id":   float64(3),
		"user_name": "إيمان غباش",
		"records": []any{
			map[string]any{"card_id": "3333", "entryType": "entry"},
		},
	}

	once := n.ToCanonical(in)
	twice := n.ToCanonical(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("normalization not idempotent:\nonce:  %#v\ntwice: %#v", once, twice)
	}
}

func TestToCanonicalRecursesNested(t *testing.T) {
	n := New()
	in := map[string]any{
		"data": []any{
			map[string]any{"last_seen": "2024-11-24 09:30:00"},
		},
	}

	got := n.ToCanonical(in).(map[string]any)
	rec := got["data"].([]any)[0].(map[string]any)
	if rec["lastSeen"] != "2024-11-24 09:30:00" {
		t.Errorf("nested record not normalized: %v", rec)
	}
}

func TestToCanonicalSkipsPreserved(t *testing.T) {
	n := New()
	got := n.ToCanonical(map[string]any{"Phone": "0987654321"}).(map[string]any)
	if got["Phone"] != "0987654321" {
		t.Errorf("preserved key lost: %v", got)
	}
	if _, ok := got["_phone"]; ok {
		t.Errorf("preserved key must not grow aliases: %v", got)
	}
}

func TestToAPIShapeRewritesKeys(t *testing.T) {
	n := New()
	in := map[string]any{
		"firstName": "Salam",
		"lastName":  "Muslim",
		"phone":     "0987654322",
		"cardId":    "2222",
	}

	got := n.ToAPIShape(in).(map[string]any)
	want := map[string]any{
		"first_name": "Salam",
		"last_name":  "Muslim",
		"phone":      "0987654322",
		"card_id":    "2222",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ToAPIShape = %#v, want %#v", got, want)
	}
}

func TestToAPIShapePreservesPhoneCasing(t *testing.T) {
	n := New()
	got := n.ToAPIShape(map[string]any{"Phone": "0987654321"}).(map[string]any)
	if got["Phone"] != "0987654321" {
		t.Fatalf("Phone must keep its exact casing: %v", got)
	}
}

func TestToAPIShapeExistingSnakeWins(t *testing.T) {
	n := New()
	in := map[string]any{
		"first_name": "from-snake",
		"firstName":  "from-camel",
	}
	got := n.ToAPIShape(in).(map[string]any)
	if got["first_name"] != "from-snake" {
		t.Fatalf("existing snake key must win: %v", got)
	}
}

func TestToAPIShapeCustomPreserveList(t *testing.T) {
	n := New(WithPreserved("DeviceToken"))
	got := n.ToAPIShape(map[string]any{"DeviceToken": "abc"}).(map[string]any)
	if got["DeviceToken"] != "abc" {
		t.Fatalf("custom preserved key rewritten: %v", got)
	}
}

func TestUnwrapEnvelope(t *testing.T) {
	payload := map[string]any{"id": float64(1)}
	got := UnwrapEnvelope(map[string]any{
		"code":    float64(200),
		"message": "ok",
		"data":    payload,
	})
	if !reflect.DeepEqual(got, payload) {
		t.Fatalf("UnwrapEnvelope = %#v, want %#v", got, payload)
	}
}

func TestUnwrapEnvelopePassthrough(t *testing.T) {
	bare := map[string]any{"id": float64(1), "status": "active"}
	if got := UnwrapEnvelope(bare); !reflect.DeepEqual(got, bare) {
		t.Fatalf("bare object must pass through, got %#v", got)
	}
	arr := []any{"a", "b"}
	if got := UnwrapEnvelope(arr); !reflect.DeepEqual(got, arr) {
		t.Fatalf("bare array must pass through, got %#v", got)
	}
}

func TestUnwrapEnvelopeNeedsBothKeys(t *testing.T) {
	onlyData := map[string]any{"data": "x"}
	if got := UnwrapEnvelope(onlyData); !reflect.DeepEqual(got, onlyData) {
		t.Fatalf("data without code must pass through, got %#v", got)
	}
}

func TestUnwrapEnvelopeFlattensDoubleWrap(t *testing.T) {
	a := map[string]any{"id": float64(1)}
	b := map[string]any{"id": float64(2)}

	got := UnwrapEnvelope(map[string]any{
		"code": float64(200),
		"data": []any{[]any{a, b}},
	})
	list, ok := got.([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("expected flattened list of 2, got %#v", got)
	}
	if !reflect.DeepEqual(list[0], a) || !reflect.DeepEqual(list[1], b) {
		t.Fatalf("unexpected records: %#v", list)
	}
}

func TestUnwrapEnvelopeSingleWrapUntouched(t *testing.T) {
	a := map[string]any{"id": float64(1)}
	b := map[string]any{"id": float64(2)}

	got := UnwrapEnvelope(map[string]any{
		"code": float64(200),
		"data": []any{a, b},
	})
	list, ok := got.([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("single-wrapped list must not be flattened, got %#v", got)
	}
}

func TestCaseConversionRules(t *testing.T) {
	tests := []struct {
		snake string
		camel string
	}{
		{"first_name", "firstName"},
		{"attendance_record_id", "attendanceRecordId"},
		{"email", "email"},
	}
	for _, tt := range tests {
		if got := snakeToCamel(tt.snake); got != tt.camel {
			t.Errorf("snakeToCamel(%q) = %q, want %q", tt.snake, got, tt.camel)
		}
		if got := camelToSnake(tt.camel); got != tt.snake {
			t.Errorf("camelToSnake(%q) = %q, want %q", tt.camel, got, tt.snake)
		}
	}
}
