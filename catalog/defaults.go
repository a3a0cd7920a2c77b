package catalog

// DefaultContact holds the contact constants compiled into the binary.
// They back the site when the config document is missing or unreadable.
var DefaultContact = struct {
	Phone     string
	WhatsApp  string
	Email     string
	Address   string
	Facebook  string
	Instagram string
}{
	Phone:     "+254 7XX XXX XXX",
	WhatsApp:  "2547XXXXXXXX",
	Email:     "info@floorspaceinteriors.co.ke",
	Address:   "Magunas Supermarket Building, Thika Road, Nairobi, Kenya",
	Facebook:  "https://facebook.com/floorspacekenya",
	Instagram: "https://instagram.com/floorspaceke",
}

// DefaultSiteConfig returns the synthesized configuration used when no
// config document exists: default hero copy merged with the contact
// constants. Never written back to the store.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		HeroTitle:    "Premium Flooring & Interior Finishes",
		HeroSubtitle: "Transform your space with Kenya's most trusted partner for LVT, SPC, Wallpapers & Decor.",
		AboutText:    "Based in the heart of the bustling Thika Road...",
		Phone:        DefaultContact.Phone,
		WhatsApp:     DefaultContact.WhatsApp,
		Email:        DefaultContact.Email,
		Address:      DefaultContact.Address,
		FacebookURL:  DefaultContact.Facebook,
		InstagramURL: DefaultContact.Instagram,
	}
}

// DefaultProducts returns a fresh copy of the bundled product catalog.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Luxury Oak LVT",
			Category:    string(CategoryLVT),
			Description: "Durable, water-resistant luxury vinyl tiles with a realistic oak wood texture.",
			Price:       "Ksh 2,500 per sqm",
			Image:       "https://picsum.photos/seed/lvt1/600/400",
			Features:    []string{"Waterproof", "Scratch Resistant", "Easy Install"},
			Status:      StatusAvailable,
		},
		{
			ID:          "2",
			Name:        "Rigid Core SPC - Grey Slate",
			Category:    string(CategorySPC),
			Description: "Ultra-stable SPC flooring perfect for high-traffic commercial or residential areas.",
			Price:       "Ksh 3,200 per sqm",
			Image:       "https://picsum.photos/seed/spc1/600/400",
			Features:    []string{"Ultra Durable", "Stone Plastic Composite"},
			Status:      StatusAvailable,
		},
		{
			ID:          "3",
			Name:        "Marble Finish PVC Sheet",
			Category:    string(CategoryWallpaper),
			Description: "Transform your walls with premium PVC marble sheets. High gloss and easy to clean.",
			Price:       "Ksh 4,500 per sheet",
			Image:       "https://picsum.photos/seed/pvc1/600/400",
			Features:    []string{"High Gloss", "Seamless Finish"},
			Status:      StatusAvailable,
		},
		{
			ID:          "4",
			Name:        "Premium 40mm Artificial Grass",
			Category:    string(CategoryTurf),
			Description: "Lush, evergreen turf for balconies, gardens, and playgrounds.",
			Price:       "Ksh 1,800 per sqm",
			Image:       "https://picsum.photos/seed/grass1/600/400",
			Features:    []string{"UV Stabilized", "Pet Friendly"},
			Status:      StatusAvailable,
		},
		{
			ID:          "5",
			Name:        "Self-Adhesive Wood Vinyl",
			Category:    string(CategoryVinyl),
			Description: "Quick DIY solution for furniture and floor refreshes. Just peel and stick.",
			Price:       "Ksh 800 per roll",
			Image:       "https://picsum.photos/seed/vinyl1/600/400",
			Features:    []string{"Peel & Stick", "Moisture Proof"},
			Status:      StatusAvailable,
		},
	}
}

// DefaultTestimonials returns a fresh copy of the bundled testimonials.
func DefaultTestimonials() []Testimonial {
	return []Testimonial{
		{
			ID:        "1",
			Name:      "Sarah M.",
			Location:  "Syokimau",
			Rating:    5,
			Text:      "The LVT flooring transformed my living room completely. Excellent service and delivery was on time!",
			Date:      "Oct 2023",
			Published: true,
		},
		{
			ID:        "2",
			Name:      "John K.",
			Location:  "Kiserian",
			Rating:    5,
			Text:      "Highly recommend their SPC flooring for office spaces. Extremely durable and looks professional.",
			Date:      "Dec 2023",
			Published: true,
		},
		{
			ID:        "3",
			Name:      "Amara W.",
			Location:  "Nairobi",
			Rating:    4,
			Text:      "Beautiful wallpapers! The selection at Floor Space is unmatched in Kenya.",
			Date:      "Jan 2024",
			Published: true,
		},
	}
}

// DefaultGallery returns a fresh copy of the bundled showcase gallery.
func DefaultGallery() []GalleryItem {
	return []GalleryItem{
		{ID: "g1", URL: "https://picsum.photos/seed/inst1/800/600", Title: "LVT Installation - Residential", Category: "LVT", Type: MediaImage},
		{ID: "g2", URL: "https://picsum.photos/seed/inst2/800/600", Title: "SPC Office Floor", Category: "SPC", Type: MediaImage},
		{ID: "g3", URL: "https://picsum.photos/seed/inst3/800/600", Title: "PVC Marble Wall Feature", Category: "Wall Decor", Type: MediaImage},
		{ID: "g4", URL: "https://picsum.photos/seed/inst4/800/600", Title: "Balcony Turf Makeover", Category: "Turf", Type: MediaImage},
	}
}
