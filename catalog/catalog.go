// Package catalog defines the content entities served by the site — the
// product range, customer testimonials, the installation gallery and the
// site-wide configuration singleton — together with the bundled default
// records used when live data is unavailable.
package catalog

import "time"

// Category identifies a product line. The store holds the display string,
// so categories compare by their label.
type Category string

const (
	CategoryLVT       Category = "LVT Flooring"
	CategorySPC       Category = "SPC Flooring"
	CategoryTurf      Category = "Artificial Turf"
	CategoryWallpaper Category = "Wallpapers & PVC"
	CategoryVinyl     Category = "Vinyl Decor"
)

// Categories lists every known product category in display order.
func Categories() []Category {
	return []Category{CategoryLVT, CategorySPC, CategoryTurf, CategoryWallpaper, CategoryVinyl}
}

// Availability of a product.
const (
	StatusAvailable  = "available"
	StatusOutOfStock = "out_of_stock"
)

// Media kinds for gallery items.
const (
	MediaImage = "image"
	MediaVideo = "video"
)

// Product is a single catalog entry. Price is free text ("Ksh 2,500 per
// sqm") because pricing is quoted per unit of the seller's choosing.
type Product struct {
	ID          string    `firestore:"-"`
	Name        string    `firestore:"name"`
	Category    string    `firestore:"category"`
	Description string    `firestore:"description"`
	Price       string    `firestore:"price"`
	Image       string    `firestore:"image"`
	Features    []string  `firestore:"features"`
	Status      string    `firestore:"status"`
	CreatedAt   time.Time `firestore:"createdAt,omitempty"`
	UpdatedAt   time.Time `firestore:"updatedAt,omitempty"`
}

// Testimonial is a customer review. Only published testimonials are shown
// on the public site.
type Testimonial struct {
	ID        string `firestore:"-"`
	Name      string `firestore:"name"`
	Location  string `firestore:"location"`
	Rating    int    `firestore:"rating"`
	Text      string `firestore:"text"`
	Date      string `firestore:"date"`
	Published bool   `firestore:"published"`
}

// GalleryItem is one showcase photo or video of a completed installation.
type GalleryItem struct {
	ID        string    `firestore:"-"`
	URL       string    `firestore:"url"`
	Title     string    `firestore:"title"`
	Category  string    `firestore:"category"`
	Type      string    `firestore:"type"`
	CreatedAt time.Time `firestore:"createdAt,omitempty"`
}

// SiteConfig is the singleton document holding hero copy and contact
// channels. Every public page reads it through the synchronizer.
type SiteConfig struct {
	HeroTitle    string `firestore:"heroTitle"`
	HeroSubtitle string `firestore:"heroSubtitle"`
	AboutText    string `firestore:"aboutText"`
	Phone        string `firestore:"phone"`
	WhatsApp     string `firestore:"whatsapp"`
	Email        string `firestore:"email"`
	Address      string `firestore:"address"`
	FacebookURL  string `firestore:"facebookUrl"`
	InstagramURL string `firestore:"instagramUrl"`
}
