package conv

import (
	"reflect"
	"testing"
)

func TestToFloat64(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{3.14, 3.14, true},
		{float32(2), 2, true},
		{7, 7, true},
		{int64(8), 8, true},
		{int32(9), 9, true},
		{true, 1, true},
		{false, 0, true},
		{"1.5", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := ToFloat64(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ToFloat64(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestToInt64(t *testing.T) {
	tests := []struct {
		in   any
		want int64
		ok   bool
	}{
		{42, 42, true},
		{int64(42), 42, true},
		{int32(42), 42, true},
		{42.9, 42, true},
		{"42", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := ToInt64(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ToInt64(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSliceAnyToInt64(t *testing.T) {
	got := SliceAnyToInt64([]any{1, int64(2), 3.0, "skip", nil})
	if want := []int64{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("SliceAnyToInt64() = %v, want %v", got, want)
	}
	if SliceAnyToInt64(nil) != nil {
		t.Error("SliceAnyToInt64(nil) should be nil")
	}
	if SliceAnyToInt64("not a slice") != nil {
		t.Error("SliceAnyToInt64(non-slice) should be nil")
	}
}

func TestConfigGet(t *testing.T) {
	cfg := map[string]any{"name": "a", "flag": true}

	if got := ConfigGet(cfg, "name", "d"); got != "a" {
		t.Errorf("ConfigGet(name) = %q", got)
	}
	if got := ConfigGet(cfg, "missing", "d"); got != "d" {
		t.Errorf("ConfigGet(missing) = %q, want default", got)
	}
	if got := ConfigGet(cfg, "name", 0); got != 0 {
		t.Errorf("type mismatch should return default, got %v", got)
	}
	if got := ConfigGet[bool](nil, "flag", false); got {
		t.Error("nil map should return default")
	}
}

func TestConfigGetNumbers(t *testing.T) {
	cfg := map[string]any{"i": 5, "f": 2.5, "i64": int64(7)}

	if got := ConfigGetInt64(cfg, "i", 0); got != 5 {
		t.Errorf("ConfigGetInt64(i) = %d", got)
	}
	if got := ConfigGetInt64(cfg, "f", 0); got != 2 {
		t.Errorf("ConfigGetInt64(f) = %d", got)
	}
	if got := ConfigGetInt64(cfg, "missing", 9); got != 9 {
		t.Errorf("ConfigGetInt64(missing) = %d, want default", got)
	}
	if got := ConfigGetFloat64(cfg, "i64", 0); got != 7 {
		t.Errorf("ConfigGetFloat64(i64) = %v", got)
	}
	if got := ConfigGetFloat64(cfg, "f", 0); got != 2.5 {
		t.Errorf("ConfigGetFloat64(f) = %v", got)
	}
}

func TestMapToFloat64(t *testing.T) {
	got := MapToFloat64(map[string]any{"a": 1, "b": 2.5, "c": "nope"})
	want := map[string]float64{"a": 1, "b": 2.5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MapToFloat64() = %v, want %v", got, want)
	}
}
