package catalog

import "strings"

// View helpers for the pages rendering the catalog. Filtering is
// client-side: plain case-insensitive equality or substring match on the
// category label, nothing richer.

// FilterProducts returns the products whose category matches the given
// label. An empty category returns the input unchanged.
func FilterProducts(products []Product, category string) []Product {
	if category == "" {
		return products
	}
	want := strings.ToLower(category)
	var out []Product
	for _, p := range products {
		got := strings.ToLower(p.Category)
		if got == want || strings.Contains(got, want) {
			out = append(out, p)
		}
	}
	return out
}

// FilterGallery returns the gallery items tagged with the given category.
// An empty category returns the input unchanged.
func FilterGallery(items []GalleryItem, category string) []GalleryItem {
	if category == "" {
		return items
	}
	want := strings.ToLower(category)
	var out []GalleryItem
	for _, g := range items {
		got := strings.ToLower(g.Category)
		if got == want || strings.Contains(got, want) {
			out = append(out, g)
		}
	}
	return out
}

// PublishedTestimonials returns only the testimonials flagged published.
func PublishedTestimonials(ts []Testimonial) []Testimonial {
	var out []Testimonial
	for _, t := range ts {
		if t.Published {
			out = append(out, t)
		}
	}
	return out
}

// WhatsAppLink builds a click-to-chat URL from a stored WhatsApp
// identifier, stripping everything but digits so formatted numbers
// ("+254 7..") still produce a valid link. Returns "" when no digits
// remain.
func WhatsAppLink(id string) string {
	var digits strings.Builder
	for _, r := range id {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ""
	}
	return "https://wa.me/" + digits.String()
}
