package config

import (
	"math"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#d724ff", "#d724ff", false},
		{"0xB514FF", "#b514ff", false},
		{"2e58ff", "#2e58ff", false},
		{" #3e95b1 ", "#3e95b1", false},
		{"#fff", "#ffffff", false},
		{"not a color", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseHexColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := c.Hex(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestHexColorYAMLRoundTrip(t *testing.T) {
	type doc struct {
		C HexColor `yaml:"c"`
	}

	out, err := yaml.Marshal(doc{C: MustHexColor("#2e58ff")})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var back doc
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.C.Hex() != "#2e58ff" {
		t.Errorf("round trip: got %s, want #2e58ff", back.C.Hex())
	}
}

// TestRotateHue 色相旋转一整圈应回到原色
func TestRotateHue(t *testing.T) {
	c := MustHexColor("#d724ff")
	rotated := c.RotateHue(120)
	if rotated.Hex() == c.Hex() {
		t.Fatalf("rotation by 120 degrees should change the color")
	}

	full := c
	for i := 0; i < 36; i++ {
		full = full.RotateHue(10)
	}
	if d := c.DistanceRgb(full.Color); d > 0.01 {
		t.Errorf("full turn drifted: distance %v", d)
	}

	h1, _, _ := c.Hsv()
	h2, _, _ := c.RotateHue(-30).Hsv()
	diff := math.Mod(h1-h2+360, 360)
	if math.Abs(diff-30) > 0.5 {
		t.Errorf("RotateHue(-30): hue moved by %v, want 30", diff)
	}
}
