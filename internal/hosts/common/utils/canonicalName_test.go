package utils

import "testing"

func TestCanonicalHostName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already canonical", "ads.example.com", "ads.example.com"},
		{"uppercase", "ADS.EXAMPLE.COM", "ads.example.com"},
		{"mixed case", "Ads.Example.Com", "ads.example.com"},
		{"surrounding whitespace", "  ads.example.com\t", "ads.example.com"},
		{"trailing dot", "ads.example.com.", "ads.example.com"},
		{"multiple trailing dots", "ads.example.com...", "ads.example.com"},
		{"wildcard dot preserved", ".ads.example.com", ".ads.example.com"},
		{"wildcard uppercase", ".ADS.Example.com", ".ads.example.com"},
		{"empty", "", ""},
		{"unicode to punycode", "bücher.example", "xn--bcher-kva.example"},
		{"unicode uppercase", "BÜCHER.example", "xn--bcher-kva.example"},
		{"wildcard unicode", ".bücher.example", ".xn--bcher-kva.example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanonicalHostName(tt.in)
			if got != tt.want {
				t.Errorf("CanonicalHostName(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}
