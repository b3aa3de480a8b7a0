package geoip

import (
	"errors"
	"testing"
)

func TestLocaleForCountry(t *testing.T) {
	cases := map[string]string{
		"SA":  "ar",
		"eg":  "ar",
		" ae": "ar",
		"US":  "en",
		"ID":  "en",
		"":    "",
	}
	for code, want := range cases {
		if got := LocaleForCountry(code); got != want {
			t.Fatalf("LocaleForCountry(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestNewResolverWithoutPath(t *testing.T) {
	r, err := NewResolver("  ")
	if err != nil || r != nil {
		t.Fatalf("NewResolver(blank) = %v, %v", r, err)
	}
	if Lookup(r) != nil {
		t.Fatal("Lookup(nil) must be nil")
	}
}

func TestNilResolverIsUnavailable(t *testing.T) {
	var r *Resolver
	if _, err := r.CountryCode("203.0.113.4"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("CountryCode on nil resolver = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close on nil resolver = %v", err)
	}
}

func TestNewResolverMissingFile(t *testing.T) {
	if _, err := NewResolver("/nonexistent/GeoLite2-Country.mmdb"); err == nil {
		t.Fatal("expected error for a missing database")
	}
}
