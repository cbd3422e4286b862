package migrate

import (
	"errors"
	"testing"
)

func TestParseMemoryMB(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"200MB", 200},
		{"200mb", 200},
		{"200 MB", 200},
		{"2GB", 2048},
		{"1.5GB", 1536},
		{"512KB", 1},
		{"100", 100},
		{"0", 0},
	}

	for _, tt := range tests {
		got, err := ParseMemoryMB(tt.in)
		if err != nil {
			t.Errorf("ParseMemoryMB(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMemoryMB(%q): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestParseMemoryMBRejectsJunk(t *testing.T) {
	for _, in := range []string{"", "lots", "MB", "-5MB", "200XB", "12.3.4GB"} {
		_, err := ParseMemoryMB(in)
		var pe *UnitParseError
		if !errors.As(err, &pe) {
			t.Errorf("ParseMemoryMB(%q): expected UnitParseError, got %v", in, err)
		}
	}
}

func TestParseDurationMS(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"30s", 30000},
		{"5m", 300000},
		{"1500", 1500},
		{"1.5s", 1500},
		{"0", 0},
	}

	for _, tt := range tests {
		got, err := ParseDurationMS(tt.in)
		if err != nil {
			t.Errorf("ParseDurationMS(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDurationMS(%q): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestParseDurationMSRejectsJunk(t *testing.T) {
	for _, in := range []string{"", "soon", "-5s", "-100"} {
		_, err := ParseDurationMS(in)
		var pe *UnitParseError
		if !errors.As(err, &pe) {
			t.Errorf("ParseDurationMS(%q): expected UnitParseError, got %v", in, err)
		}
	}
}
