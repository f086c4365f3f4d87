package feature

import (
	"math"
	"testing"
)

func TestStandardScaler(t *testing.T) {
	s := FitStandardScaler([]float64{1, 2, 3, 4, 5})
	if s.Mean != 3 {
		t.Errorf("Mean = %v, want 3", s.Mean)
	}
	if math.Abs(s.Scale-math.Sqrt2) > 1e-12 {
		t.Errorf("Scale = %v, want sqrt(2)", s.Scale)
	}
	if got := s.Transform(3); got != 0 {
		t.Errorf("Transform(mean) = %v, want 0", got)
	}
}

func TestLogNormalizer(t *testing.T) {
	var n LogNormalizer
	if got := n.NormalizeValue(0); got != 0 {
		t.Errorf("NormalizeValue(0) = %v", got)
	}
	if got := n.NormalizeValue(-5); got != 0 {
		t.Errorf("NormalizeValue(-5) = %v, want 0", got)
	}
	if got := n.NormalizeValue(math.E - 1); math.Abs(got-1) > 1e-12 {
		t.Errorf("NormalizeValue(e-1) = %v, want 1", got)
	}
}

func TestComputeStatistics(t *testing.T) {
	stats := ComputeStatistics([]float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100})
	if stats.Min != 10 || stats.Max != 100 {
		t.Errorf("min/max = %v/%v", stats.Min, stats.Max)
	}
	if stats.Median != 55 {
		t.Errorf("Median = %v, want 55", stats.Median)
	}
	if math.Abs(stats.P90-91) > 1e-9 {
		t.Errorf("P90 = %v, want 91", stats.P90)
	}
}
