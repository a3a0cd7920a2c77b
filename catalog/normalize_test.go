package catalog

import (
	"reflect"
	"testing"
	"time"
)

func TestProductFromFieldsCoercion(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	f := map[string]any{
		"name":        "Luxury Oak LVT",
		"category":    "LVT Flooring",
		"description": "Oak texture tiles.",
		"price":       "Ksh 2,500 per sqm",
		"image":       "https://cdn.example.com/oak.jpg",
		"features":    []any{"Waterproof", "Easy Install"},
		"status":      "out_of_stock",
		"updatedAt":   now,
	}
	p := ProductFromFields("p1", f)

	if p.ID != "p1" {
		t.Errorf("ID = %q, want p1", p.ID)
	}
	if p.Name != "Luxury Oak LVT" {
		t.Errorf("Name = %q", p.Name)
	}
	if !reflect.DeepEqual(p.Features, []string{"Waterproof", "Easy Install"}) {
		t.Errorf("Features = %v", p.Features)
	}
	if p.Status != StatusOutOfStock {
		t.Errorf("Status = %q, want %q", p.Status, StatusOutOfStock)
	}
	if !p.UpdatedAt.Equal(now) {
		t.Errorf("UpdatedAt = %v, want %v", p.UpdatedAt, now)
	}
}

func TestProductFromFieldsMalformed(t *testing.T) {
	// The store is schemaless; junk values must coerce, not panic.
	f := map[string]any{
		"name":     12345,
		"features": "not-a-list",
		"status":   "???",
	}
	p := ProductFromFields("p2", f)

	if p.Name != "12345" {
		t.Errorf("Name = %q, want coerced string", p.Name)
	}
	if p.Status != StatusAvailable {
		t.Errorf("Status = %q, want default %q", p.Status, StatusAvailable)
	}
	if p.Price != "" || p.Image != "" {
		t.Errorf("missing fields should be blank, got price=%q image=%q", p.Price, p.Image)
	}
}

func TestTestimonialRatingClamp(t *testing.T) {
	tests := []struct {
		raw  any
		want int
	}{
		{raw: 3, want: 3},
		{raw: 0, want: 1},
		{raw: -2, want: 1},
		{raw: 9, want: 5},
		{raw: "4", want: 4},
		{raw: nil, want: 1},
	}
	for _, tc := range tests {
		got := TestimonialFromFields("t", map[string]any{"rating": tc.raw}).Rating
		if got != tc.want {
			t.Errorf("rating %v -> %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestGalleryItemTypeDefaultsToImage(t *testing.T) {
	tests := []struct {
		raw  any
		want string
	}{
		{raw: "video", want: MediaVideo},
		{raw: "image", want: MediaImage},
		{raw: "gif", want: MediaImage},
		{raw: nil, want: MediaImage},
	}
	for _, tc := range tests {
		got := GalleryItemFromFields("g", map[string]any{"type": tc.raw}).Type
		if got != tc.want {
			t.Errorf("type %v -> %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestSiteConfigFromFields(t *testing.T) {
	cfg := SiteConfigFromFields(map[string]any{
		"heroTitle": "Hello",
		"phone":     "+254 700 000 000",
		"whatsapp":  254700000000,
	})
	if cfg.HeroTitle != "Hello" {
		t.Errorf("HeroTitle = %q", cfg.HeroTitle)
	}
	if cfg.WhatsApp != "254700000000" {
		t.Errorf("WhatsApp = %q, want coerced digits", cfg.WhatsApp)
	}
	if cfg.Email != "" {
		t.Errorf("missing email should be blank, got %q", cfg.Email)
	}
}
