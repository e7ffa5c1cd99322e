package record

import (
	"math"
	"sort"
	"testing"
)

func TestRecord_NewRoundTrip(t *testing.T) {
	r := New("rain", 0.3)

	if r.EventName() != "rain" {
		t.Errorf("expected event name %q, got %q", "rain", r.EventName())
	}
	if r.Value() != 0.3 {
		t.Errorf("expected value 0.3, got %v", r.Value())
	}
}

func TestRecord_ZeroValue(t *testing.T) {
	var r Record[string, float64]

	if r.EventName() != "" {
		t.Errorf("expected empty event name, got %q", r.EventName())
	}
	if r.Value() != 0 {
		t.Errorf("expected zero value, got %v", r.Value())
	}

	// Zero value must be usable without further initialization
	r.SetEventName("storm")
	r.SetValue(0.7)
	if r.EventName() != "storm" || r.Value() != 0.7 {
		t.Errorf("zero-value record not mutable: got (%q, %v)", r.EventName(), r.Value())
	}
}

func TestRecord_Setters(t *testing.T) {
	r := New("rain", 0.3)

	r.SetEventName("storm")
	if r.EventName() != "storm" {
		t.Errorf("expected event name %q, got %q", "storm", r.EventName())
	}

	r.SetValue(0.9)
	if r.Value() != 0.9 {
		t.Errorf("expected value 0.9, got %v", r.Value())
	}
}

func TestRecord_ChangeValue(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		delta float64
		want  float64
	}{
		{"positive delta", 0.3, 0.2, 0.5},
		{"negative delta", 0.3, -0.2, 0.1},
		{"below zero", 0.1, -0.5, -0.4},
		{"above one", 0.9, 0.5, 1.4},
		{"zero delta", 0.42, 0, 0.42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New("event", tt.start)
			r.ChangeValue(tt.delta)
			if math.Abs(r.Value()-tt.want) > 1e-12 {
				t.Errorf("ChangeValue(%v) from %v: expected %v, got %v",
					tt.delta, tt.start, tt.want, r.Value())
			}
		})
	}
}

func TestRecord_ChangeValue_NaNPropagates(t *testing.T) {
	r := New("event", 0.5)
	r.ChangeValue(math.NaN())

	if !math.IsNaN(r.Value()) {
		t.Errorf("expected NaN to propagate, got %v", r.Value())
	}
}

func TestRecord_Swap(t *testing.T) {
	a := New("rain", 0.3)
	b := New("storm", 0.9)

	a.Swap(&b)

	if a.EventName() != "storm" || a.Value() != 0.9 {
		t.Errorf("after swap expected a = (storm, 0.9), got (%q, %v)", a.EventName(), a.Value())
	}
	if b.EventName() != "rain" || b.Value() != 0.3 {
		t.Errorf("after swap expected b = (rain, 0.3), got (%q, %v)", b.EventName(), b.Value())
	}

	// Swapping twice restores the original state
	a.Swap(&b)
	if a.EventName() != "rain" || a.Value() != 0.3 {
		t.Errorf("double swap not idempotent: got (%q, %v)", a.EventName(), a.Value())
	}
}

func TestRecord_SwapSelf(t *testing.T) {
	r := New("rain", 0.3)
	r.Swap(&r)

	if r.EventName() != "rain" || r.Value() != 0.3 {
		t.Errorf("self-swap changed record: got (%q, %v)", r.EventName(), r.Value())
	}
}

func TestRecord_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b Record[string, float64]
		want int
	}{
		{"equal", New("A", 0.5), New("A", 0.5), 0},
		{"value orders within name", New("A", 0.5), New("A", 0.6), -1},
		{"name dominates value", New("A", 0.9), New("B", 0.1), -1},
		{"greater by value", New("A", 0.6), New("A", 0.5), 1},
		{"greater by name", New("B", 0.1), New("A", 0.9), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare: expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestRecord_EqualAndLess(t *testing.T) {
	a := New("A", 0.5)
	b := New("A", 0.6)

	if !a.Equal(a) {
		t.Error("expected a.Equal(a)")
	}
	if a.Equal(b) {
		t.Error("expected !a.Equal(b)")
	}
	if !a.Less(b) {
		t.Error("expected a.Less(b)")
	}
	if b.Less(a) {
		t.Error("expected !b.Less(a)")
	}
}

func TestRecord_SortOrdering(t *testing.T) {
	records := []Record[string, float64]{
		New("B", 0.1),
		New("A", 0.9),
		New("A", 0.5),
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Less(records[j]) })

	want := []Record[string, float64]{
		New("A", 0.5),
		New("A", 0.9),
		New("B", 0.1),
	}
	for i := range want {
		if !records[i].Equal(want[i]) {
			t.Errorf("position %d: expected (%q, %v), got (%q, %v)", i,
				want[i].EventName(), want[i].Value(),
				records[i].EventName(), records[i].Value())
		}
	}
}

func TestRecord_CopyIsIndependent(t *testing.T) {
	original := New("rain", 0.3)
	copied := original

	copied.SetEventName("storm")
	copied.SetValue(0.9)

	if original.EventName() != "rain" || original.Value() != 0.3 {
		t.Errorf("mutating copy affected original: got (%q, %v)",
			original.EventName(), original.Value())
	}
}

func TestRecord_Float32(t *testing.T) {
	r := New[string, float32]("drizzle", 0.25)
	r.ChangeValue(0.25)

	if r.Value() != 0.5 {
		t.Errorf("expected 0.5, got %v", r.Value())
	}
}

func TestRecord_Scenario(t *testing.T) {
	// construct -> read -> adjust -> rename
	r := New("rain", 0.3)

	if r.EventName() != "rain" || r.Value() != 0.3 {
		t.Fatalf("expected (rain, 0.3), got (%q, %v)", r.EventName(), r.Value())
	}

	r.ChangeValue(0.2)
	if math.Abs(r.Value()-0.5) > 1e-12 {
		t.Errorf("expected 0.5 after adjustment, got %v", r.Value())
	}

	r.SetEventName("storm")
	if r.EventName() != "storm" {
		t.Errorf("expected event name %q, got %q", "storm", r.EventName())
	}
}
