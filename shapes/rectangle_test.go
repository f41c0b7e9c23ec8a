package shapes_test

import (
	"errors"
	"strings"
	"testing"

	"cssb/jsonutil"
	"cssb/shapes"
)

func TestRectangle_Area(t *testing.T) {
	r := shapes.NewRectangle(10, 20)
	if got := r.Area(); got != 200 {
		t.Errorf("expected area 200, got %v", got)
	}
}

func TestRectangle_AreaNotCached(t *testing.T) {
	r := shapes.NewRectangle(10, 20)
	if got := r.Area(); got != 200 {
		t.Fatalf("expected area 200, got %v", got)
	}

	r.Width = 5
	if got := r.Area(); got != 100 {
		t.Errorf("expected area 100 after width change, got %v", got)
	}

	r.Height = 3
	if got := r.Area(); got != 15 {
		t.Errorf("expected area 15 after height change, got %v", got)
	}
}

func TestRectangle_JSONRoundTrip(t *testing.T) {
	orig := shapes.NewRectangle(10, 20)

	text, err := jsonutil.ToText(orig)
	if err != nil {
		t.Fatalf("ToText returned error: %v", err)
	}
	if text != `{"width":10,"height":20}` {
		t.Errorf(`expected '{"width":10,"height":20}', got '%s'`, text)
	}

	reg := jsonutil.NewRegistry()
	if err := shapes.RegisterJSON(reg); err != nil {
		t.Fatalf("RegisterJSON returned error: %v", err)
	}

	v, err := reg.Decode(shapes.JSONTag, []byte(text))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	got, ok := v.(shapes.Rectangle)
	if !ok {
		t.Fatalf("expected shapes.Rectangle, got %T", v)
	}
	if got != orig {
		t.Errorf("round-trip mismatch: got %+v, want %+v", got, orig)
	}
	if got.Area() != 200 {
		t.Errorf("expected area 200 after round-trip, got %v", got.Area())
	}
}

func TestRegisterJSON_RejectsNonNumericFields(t *testing.T) {
	reg := jsonutil.NewRegistry()
	if err := shapes.RegisterJSON(reg); err != nil {
		t.Fatalf("RegisterJSON returned error: %v", err)
	}

	_, err := reg.Decode(shapes.JSONTag, []byte(`{"width":"ten","height":20}`))
	if err == nil {
		t.Fatal("expected error for non-numeric width")
	}
	if !strings.Contains(err.Error(), "width") {
		t.Errorf("expected error to name the width field, got: %v", err)
	}
}

func TestRegisterJSON_SecondRegistrationFails(t *testing.T) {
	reg := jsonutil.NewRegistry()
	if err := shapes.RegisterJSON(reg); err != nil {
		t.Fatalf("RegisterJSON returned error: %v", err)
	}
	if err := shapes.RegisterJSON(reg); !errors.Is(err, jsonutil.ErrDuplicateTag) {
		t.Fatalf("expected ErrDuplicateTag, got %v", err)
	}
}
