package progress

import (
	"math"
	"testing"
)

func TestNumericFloat64(t *testing.T) {
	cases := []struct {
		name  string
		value Numeric
		want  float64
	}{
		{"absent", Absent(), 0},
		{"number", Number(5), 5},
		{"negative number", Number(-3.5), -3.5},
		{"nan", Number(math.NaN()), 0},
		{"positive infinity", Number(math.Inf(1)), 0},
		{"negative infinity", Number(math.Inf(-1)), 0},
		{"decimal text", Text("12.5"), 12.5},
		{"padded text", Text(" 12.5 "), 12.5},
		{"garbage text", Text("abc"), 0},
		{"empty text", Text(""), 0},
		{"infinite text", Text("Inf"), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.value.Float64(); got != tc.want {
				t.Fatalf("Float64() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNumericScan(t *testing.T) {
	cases := []struct {
		name   string
		source any
		want   float64
	}{
		{"nil", nil, 0},
		{"float64", float64(7.25), 7.25},
		{"int64", int64(42), 42},
		{"bytes", []byte("3.5"), 3.5},
		{"string", "62", 62},
		{"garbage string", "not-a-number", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var n Numeric
			if err := n.Scan(tc.source); err != nil {
				t.Fatalf("Scan returned error: %v", err)
			}
			if got := n.Float64(); got != tc.want {
				t.Fatalf("Float64() = %v, want %v", got, tc.want)
			}
		})
	}

	var n Numeric
	if err := n.Scan(true); err == nil {
		t.Fatal("expected error for unsupported source type")
	}
}

func TestNumericValueRoundTrip(t *testing.T) {
	v, err := Number(1.5).Value()
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}
	if v != float64(1.5) {
		t.Fatalf("expected 1.5, got %v", v)
	}

	v, err = Text("2.5").Value()
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}
	if v != "2.5" {
		t.Fatalf("expected \"2.5\", got %v", v)
	}

	v, err = Absent().Value()
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}
	if v != nil {
		t.Fatalf("expected nil, got %v", v)
	}
}
