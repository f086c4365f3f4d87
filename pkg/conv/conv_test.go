package conv

import "testing"

func TestToIntPair(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		lo, hi int
		ok     bool
	}{
		{"array", [2]int{60, 120}, 60, 120, true},
		{"int slice", []int{2000, 2020}, 2000, 2020, true},
		{"yaml slice", []any{60, 120.0}, 60, 120, true},
		{"wrong length", []any{60}, 0, 0, false},
		{"wrong type", "60-120", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, ok := ToIntPair(tt.input)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && (lo != tt.lo || hi != tt.hi) {
				t.Errorf("got (%d, %d), want (%d, %d)", lo, hi, tt.lo, tt.hi)
			}
		})
	}
}

func TestToStringSlice(t *testing.T) {
	got := ToStringSlice([]any{"Drama", 7.0, true})
	if len(got) != 2 || got[0] != "Drama" || got[1] != "7" {
		t.Errorf("ToStringSlice = %v", got)
	}
	if ToStringSlice(nil) != nil {
		t.Errorf("nil input should give nil")
	}
}

func TestConfigGet(t *testing.T) {
	cfg := map[string]any{"k": 20, "weight": 1, "name": "knn"}
	if got := ConfigGetInt64(cfg, "k", 5); got != 20 {
		t.Errorf("ConfigGetInt64 = %d", got)
	}
	if got := ConfigGetFloat64(cfg, "weight", 0.5); got != 1.0 {
		t.Errorf("ConfigGetFloat64 = %v", got)
	}
	if got := ConfigGet(cfg, "name", ""); got != "knn" {
		t.Errorf("ConfigGet = %q", got)
	}
	if got := ConfigGet(cfg, "missing", "default"); got != "default" {
		t.Errorf("ConfigGet default = %q", got)
	}
}
