package catalog

import (
	"github.com/spf13/cast"
)

// The store enforces no schema, so documents can carry missing or oddly
// typed fields. These constructors coerce raw document fields into the
// tagged entity types at the store boundary; a malformed value becomes its
// zero value (or a clamped one) instead of surfacing at every read site.

// ProductFromFields builds a Product from a raw document.
func ProductFromFields(id string, f map[string]any) Product {
	p := Product{
		ID:          id,
		Name:        cast.ToString(f["name"]),
		Category:    cast.ToString(f["category"]),
		Description: cast.ToString(f["description"]),
		Price:       cast.ToString(f["price"]),
		Image:       cast.ToString(f["image"]),
		Features:    cast.ToStringSlice(f["features"]),
		Status:      cast.ToString(f["status"]),
		CreatedAt:   cast.ToTime(f["createdAt"]),
		UpdatedAt:   cast.ToTime(f["updatedAt"]),
	}
	if p.Status != StatusOutOfStock {
		p.Status = StatusAvailable
	}
	return p
}

// TestimonialFromFields builds a Testimonial from a raw document. Ratings
// are clamped to the 1..5 star scale.
func TestimonialFromFields(id string, f map[string]any) Testimonial {
	t := Testimonial{
		ID:        id,
		Name:      cast.ToString(f["name"]),
		Location:  cast.ToString(f["location"]),
		Rating:    cast.ToInt(f["rating"]),
		Text:      cast.ToString(f["text"]),
		Date:      cast.ToString(f["date"]),
		Published: cast.ToBool(f["published"]),
	}
	if t.Rating < 1 {
		t.Rating = 1
	} else if t.Rating > 5 {
		t.Rating = 5
	}
	return t
}

// GalleryItemFromFields builds a GalleryItem from a raw document. Anything
// that is not explicitly a video renders as an image.
func GalleryItemFromFields(id string, f map[string]any) GalleryItem {
	g := GalleryItem{
		ID:        id,
		URL:       cast.ToString(f["url"]),
		Title:     cast.ToString(f["title"]),
		Category:  cast.ToString(f["category"]),
		Type:      cast.ToString(f["type"]),
		CreatedAt: cast.ToTime(f["createdAt"]),
	}
	if g.Type != MediaVideo {
		g.Type = MediaImage
	}
	return g
}

// SiteConfigFromFields builds a SiteConfig from the raw singleton document.
func SiteConfigFromFields(f map[string]any) SiteConfig {
	return SiteConfig{
		HeroTitle:    cast.ToString(f["heroTitle"]),
		HeroSubtitle: cast.ToString(f["heroSubtitle"]),
		AboutText:    cast.ToString(f["aboutText"]),
		Phone:        cast.ToString(f["phone"]),
		WhatsApp:     cast.ToString(f["whatsapp"]),
		Email:        cast.ToString(f["email"]),
		Address:      cast.ToString(f["address"]),
		FacebookURL:  cast.ToString(f["facebookUrl"]),
		InstagramURL: cast.ToString(f["instagramUrl"]),
	}
}
