package filters

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestStack_Toggle(t *testing.T) {
	s := NewStack()

	on, err := s.Toggle(Grayscale)
	if err != nil || !on {
		t.Fatalf("first Toggle: got (%v, %v), want (true, nil)", on, err)
	}
	if !s.Enabled(Grayscale) {
		t.Error("Grayscale should be enabled")
	}

	on, err = s.Toggle(Grayscale)
	if err != nil || on {
		t.Fatalf("second Toggle: got (%v, %v), want (false, nil)", on, err)
	}
	if s.Enabled(Grayscale) {
		t.Error("Grayscale should be disabled")
	}
	if !s.Neutral() {
		t.Error("stack should be neutral again")
	}
}

func TestStack_ToggleKeepsInsertionOrder(t *testing.T) {
	s := NewStack()
	for _, k := range []Kind{Invert, Grayscale, Sepia} {
		if _, err := s.Toggle(k); err != nil {
			t.Fatalf("Toggle(%v): %v", k, err)
		}
	}
	if _, err := s.Toggle(Grayscale); err != nil {
		t.Fatalf("Toggle(Grayscale): %v", err)
	}

	entries := s.Entries()
	if len(entries) != 2 || entries[0].Kind != Invert || entries[1].Kind != Sepia {
		t.Errorf("entries: got %+v, want [invert sepia]", entries)
	}
}

func TestStack_ToggleRejectsAdjustments(t *testing.T) {
	s := NewStack()
	for _, k := range []Kind{Brightness, Contrast, Kind(42)} {
		if _, err := s.Toggle(k); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("Toggle(%v): got %v, want ErrInvalidParameter", k, err)
		}
	}
}

func TestStack_SetAdjustment(t *testing.T) {
	s := NewStack()

	if got := s.Adjustment(Brightness); got != Neutral {
		t.Errorf("default brightness: got %g, want 1", got)
	}
	if err := s.SetAdjustment(Brightness, 1.5); err != nil {
		t.Fatalf("SetAdjustment: %v", err)
	}
	if err := s.SetAdjustment(Brightness, 0.5); err != nil {
		t.Fatalf("SetAdjustment: %v", err)
	}
	if got := s.Adjustment(Brightness); got != 0.5 {
		t.Errorf("brightness: got %g, want 0.5", got)
	}

	entries := s.Entries()
	if len(entries) != 1 || entries[0].Kind != Brightness || entries[0].Param == nil || *entries[0].Param != 0.5 {
		t.Errorf("entries: got %+v, want a single brightness entry", entries)
	}
}

func TestStack_SetAdjustmentInvalid(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		factor float64
	}{
		{"toggle kind", Grayscale, 1},
		{"negative", Brightness, -0.1},
		{"too large", Contrast, 2.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStack()
			if err := s.SetAdjustment(tt.kind, tt.factor); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("got %v, want ErrInvalidParameter", err)
			}
			if !s.Neutral() {
				t.Error("failed SetAdjustment changed the stack")
			}
		})
	}
}

func TestStack_Reset(t *testing.T) {
	s := NewStack()
	_, _ = s.Toggle(Invert)
	_ = s.SetAdjustment(Contrast, 1.2)

	s.Reset()

	if !s.Neutral() {
		t.Error("Reset should make the stack neutral")
	}
	if len(s.Entries()) != 0 {
		t.Errorf("Reset left entries: %+v", s.Entries())
	}
}

func TestStack_ZeroFactorEntry(t *testing.T) {
	s := NewStack()
	if err := s.SetAdjustment(Brightness, 0); err != nil {
		t.Fatalf("SetAdjustment: %v", err)
	}
	_, _ = s.Toggle(Sepia)

	b, err := json.Marshal(s.Entries())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `[{"kind":"sepia","enabled":true},{"kind":"brightness","param":0}]`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}

func TestParseKind(t *testing.T) {
	for k, name := range kindNames {
		got, err := ParseKind(" " + name + " ")
		if err != nil || got != k {
			t.Errorf("ParseKind(%q): got (%v, %v)", name, got, err)
		}
	}
	if got, err := ParseKind("SEPIA"); err != nil || got != Sepia {
		t.Errorf("ParseKind is case-sensitive: got (%v, %v)", got, err)
	}
	if _, err := ParseKind("blur"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("ParseKind(blur): got %v, want ErrInvalidParameter", err)
	}
}

func TestEntry_JSONUsesNames(t *testing.T) {
	b, err := json.Marshal(Entry{Kind: Sepia, Enabled: true})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"kind":"sepia","enabled":true}` {
		t.Errorf("got %s", b)
	}

	var e Entry
	if err := json.Unmarshal([]byte(`{"kind":"contrast","param":1.5}`), &e); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if e.Kind != Contrast || e.Param == nil || *e.Param != 1.5 {
		t.Errorf("got %+v", e)
	}
}
