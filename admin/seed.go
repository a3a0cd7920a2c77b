package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/floorspaceke/sitecontent/catalog"
	"github.com/floorspaceke/sitecontent/store"
)

// ErrAlreadySeeded means the database holds content, so seeding was
// refused to avoid duplicating the bundled defaults.
var ErrAlreadySeeded = errors.New("admin: database already holds content")

// SeedDefaults writes the bundled config, products and gallery into an
// empty database as one atomic batch, so a fresh deployment starts with
// editable content. It refuses unless the products collection is empty and
// the config document is absent. The emptiness check and the batch are not
// a single transaction; two admins racing the first setup could both pass
// the check, which is accepted for a single-admin deployment.
func (s *Service) SeedDefaults(ctx context.Context) error {
	products, err := s.store.GetAll(ctx, s.cols.Products, "", false)
	if err != nil {
		return fmt.Errorf("seed: check products: %w", err)
	}
	cfg, err := s.GetSiteConfig(ctx)
	if err != nil {
		return fmt.Errorf("seed: check config: %w", err)
	}
	if len(products) > 0 || cfg != nil {
		return ErrAlreadySeeded
	}

	def := catalog.DefaultSiteConfig()
	writes := []store.Write{{
		Collection: s.cols.Config,
		ID:         s.cols.ConfigDocID,
		Fields: map[string]any{
			"heroTitle":    def.HeroTitle,
			"heroSubtitle": def.HeroSubtitle,
			"aboutText":    def.AboutText,
			"phone":        def.Phone,
			"whatsapp":     def.WhatsApp,
			"email":        def.Email,
			"address":      def.Address,
			"facebookUrl":  def.FacebookURL,
			"instagramUrl": def.InstagramURL,
			"updatedAt":    store.ServerTimestamp,
		},
	}}
	for _, p := range catalog.DefaultProducts() {
		writes = append(writes, store.Write{
			Collection: s.cols.Products,
			Fields: map[string]any{
				"name":        p.Name,
				"category":    p.Category,
				"description": p.Description,
				"price":       p.Price,
				"image":       p.Image,
				"features":    p.Features,
				"status":      p.Status,
				"updatedAt":   store.ServerTimestamp,
			},
		})
	}
	for _, g := range catalog.DefaultGallery() {
		writes = append(writes, store.Write{
			Collection: s.cols.Gallery,
			Fields: map[string]any{
				"url":       g.URL,
				"title":     g.Title,
				"category":  g.Category,
				"type":      g.Type,
				"createdAt": store.ServerTimestamp,
			},
		})
	}

	if err := s.store.BatchWrite(ctx, writes); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	s.logger.Info("Database seeded with bundled defaults.",
		"products", len(catalog.DefaultProducts()),
		"galleryItems", len(catalog.DefaultGallery()),
	)
	return nil
}
