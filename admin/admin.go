// Package admin is the mutation layer behind the admin console: create,
// update and delete catalog entities, upload their media first, and read
// point-in-time listings ordered newest first. Errors from the store or
// the asset host propagate to the caller; there is no fallback here.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/floorspaceke/sitecontent/assets"
	"github.com/floorspaceke/sitecontent/catalog"
	"github.com/floorspaceke/sitecontent/store"
)

// Service performs admin mutations against the store and asset host.
type Service struct {
	store    store.Store
	uploader assets.Uploader
	cols     store.Collections
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger overrides the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithCollections overrides the store layout.
func WithCollections(c store.Collections) Option {
	return func(s *Service) { s.cols = c }
}

// NewService wires the mutation layer. The uploader may be nil when the
// deployment never attaches files.
func NewService(st store.Store, uploader assets.Uploader, opts ...Option) *Service {
	s := &Service{
		store:    st,
		uploader: uploader,
		cols:     store.DefaultCollections(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProductPatch carries the product fields to write. Nil pointers are left
// untouched on the stored document.
type ProductPatch struct {
	Name        *string
	Category    *string
	Description *string
	Price       *string
	Image       *string
	Features    *[]string
	Status      *string
}

func (p ProductPatch) fields() map[string]any {
	f := map[string]any{}
	putString(f, "name", p.Name)
	putString(f, "category", p.Category)
	putString(f, "description", p.Description)
	putString(f, "price", p.Price)
	putString(f, "image", p.Image)
	putString(f, "status", p.Status)
	if p.Features != nil {
		f["features"] = *p.Features
	}
	return f
}

// SaveProduct creates the product when id is empty, otherwise patches the
// existing document. A file, when present, is uploaded first and its URL
// becomes the image field; an upload failure aborts before any document
// mutation. Returns the product's ID.
func (s *Service) SaveProduct(ctx context.Context, id string, patch ProductPatch, file *assets.File) (string, error) {
	if file != nil {
		url, err := s.upload(ctx, *file)
		if err != nil {
			return "", err
		}
		patch.Image = &url
	}

	fields := patch.fields()
	fields["updatedAt"] = store.ServerTimestamp

	if id == "" {
		fields["createdAt"] = store.ServerTimestamp
		newID, err := s.store.Create(ctx, s.cols.Products, fields)
		if err != nil {
			return "", fmt.Errorf("save product: %w", err)
		}
		s.logger.Info("Product created.", "productId", newID)
		return newID, nil
	}
	if err := s.store.Update(ctx, s.cols.Products, id, fields); err != nil {
		return "", fmt.Errorf("save product %s: %w", id, err)
	}
	s.logger.Info("Product updated.", "productId", id)
	return id, nil
}

// DeleteProduct removes the product permanently.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, s.cols.Products, id); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	s.logger.Info("Product deleted.", "productId", id)
	return nil
}

// ListProducts reads the full collection, newest update first. This is a
// point-in-time read for the console, separate from the live synchronizer.
func (s *Service) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	docs, err := s.store.GetAll(ctx, s.cols.Products, "updatedAt", true)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	items := make([]catalog.Product, 0, len(docs))
	for _, d := range docs {
		items = append(items, catalog.ProductFromFields(d.ID, d.Fields))
	}
	return items, nil
}

// TestimonialPatch carries testimonial fields to write.
type TestimonialPatch struct {
	Name      *string
	Location  *string
	Rating    *int
	Text      *string
	Date      *string
	Published *bool
}

func (p TestimonialPatch) fields() map[string]any {
	f := map[string]any{}
	putString(f, "name", p.Name)
	putString(f, "location", p.Location)
	putString(f, "text", p.Text)
	putString(f, "date", p.Date)
	if p.Rating != nil {
		f["rating"] = *p.Rating
	}
	if p.Published != nil {
		f["published"] = *p.Published
	}
	return f
}

// SaveTestimonial creates or patches a testimonial, mirroring SaveProduct.
func (s *Service) SaveTestimonial(ctx context.Context, id string, patch TestimonialPatch) (string, error) {
	fields := patch.fields()
	if id == "" {
		newID, err := s.store.Create(ctx, s.cols.Testimonials, fields)
		if err != nil {
			return "", fmt.Errorf("save testimonial: %w", err)
		}
		return newID, nil
	}
	if err := s.store.Update(ctx, s.cols.Testimonials, id, fields); err != nil {
		return "", fmt.Errorf("save testimonial %s: %w", id, err)
	}
	return id, nil
}

// ToggleTestimonial flips only the published flag.
func (s *Service) ToggleTestimonial(ctx context.Context, id string, published bool) error {
	err := s.store.Update(ctx, s.cols.Testimonials, id, map[string]any{"published": published})
	if err != nil {
		return fmt.Errorf("toggle testimonial %s: %w", id, err)
	}
	return nil
}

// DeleteTestimonial removes the testimonial permanently.
func (s *Service) DeleteTestimonial(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, s.cols.Testimonials, id); err != nil {
		return fmt.Errorf("delete testimonial %s: %w", id, err)
	}
	return nil
}

// ListTestimonials reads all testimonials, most recent date first.
func (s *Service) ListTestimonials(ctx context.Context) ([]catalog.Testimonial, error) {
	docs, err := s.store.GetAll(ctx, s.cols.Testimonials, "date", true)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	items := make([]catalog.Testimonial, 0, len(docs))
	for _, d := range docs {
		items = append(items, catalog.TestimonialFromFields(d.ID, d.Fields))
	}
	return items, nil
}

// GalleryPatch carries the descriptive fields of a gallery item; the
// asset itself always comes from the uploaded file.
type GalleryPatch struct {
	Title    *string
	Category *string
}

// SaveGalleryItem uploads the file and creates a gallery item around it.
// The media kind (image or video) is inferred from the file's MIME type.
func (s *Service) SaveGalleryItem(ctx context.Context, patch GalleryPatch, file assets.File) (string, error) {
	url, err := s.upload(ctx, file)
	if err != nil {
		return "", err
	}
	fields := map[string]any{
		"url":       url,
		"type":      file.Kind(),
		"createdAt": store.ServerTimestamp,
	}
	putString(fields, "title", patch.Title)
	putString(fields, "category", patch.Category)

	id, err := s.store.Create(ctx, s.cols.Gallery, fields)
	if err != nil {
		return "", fmt.Errorf("save gallery item: %w", err)
	}
	s.logger.Info("Gallery item created.", "galleryId", id, "kind", file.Kind())
	return id, nil
}

// DeleteGalleryItem removes the gallery record. The uploaded asset stays
// on the host; orphaned media is an accepted limitation.
func (s *Service) DeleteGalleryItem(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, s.cols.Gallery, id); err != nil {
		return fmt.Errorf("delete gallery item %s: %w", id, err)
	}
	return nil
}

// ListGallery reads all gallery items, newest first.
func (s *Service) ListGallery(ctx context.Context) ([]catalog.GalleryItem, error) {
	docs, err := s.store.GetAll(ctx, s.cols.Gallery, "createdAt", true)
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	items := make([]catalog.GalleryItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, catalog.GalleryItemFromFields(d.ID, d.Fields))
	}
	return items, nil
}

// ConfigPatch carries site configuration fields to merge into the
// singleton document.
type ConfigPatch struct {
	HeroTitle    *string
	HeroSubtitle *string
	AboutText    *string
	Phone        *string
	WhatsApp     *string
	Email        *string
	Address      *string
	FacebookURL  *string
	InstagramURL *string
}

func (p ConfigPatch) fields() map[string]any {
	f := map[string]any{}
	putString(f, "heroTitle", p.HeroTitle)
	putString(f, "heroSubtitle", p.HeroSubtitle)
	putString(f, "aboutText", p.AboutText)
	putString(f, "phone", p.Phone)
	putString(f, "whatsapp", p.WhatsApp)
	putString(f, "email", p.Email)
	putString(f, "address", p.Address)
	putString(f, "facebookUrl", p.FacebookURL)
	putString(f, "instagramUrl", p.InstagramURL)
	return f
}

// GetSiteConfig reads the singleton once. Returns nil when it has never
// been written.
func (s *Service) GetSiteConfig(ctx context.Context) (*catalog.SiteConfig, error) {
	doc, err := s.store.Get(ctx, s.cols.Config, s.cols.ConfigDocID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get site config: %w", err)
	}
	cfg := catalog.SiteConfigFromFields(doc.Fields)
	return &cfg, nil
}

// UpdateSiteConfig merge-sets the singleton: only provided fields change,
// and the document is created if absent.
func (s *Service) UpdateSiteConfig(ctx context.Context, patch ConfigPatch) error {
	fields := patch.fields()
	fields["updatedAt"] = store.ServerTimestamp
	if err := s.store.Set(ctx, s.cols.Config, s.cols.ConfigDocID, fields, true); err != nil {
		return fmt.Errorf("update site config: %w", err)
	}
	s.logger.Info("Site config updated.")
	return nil
}

func (s *Service) upload(ctx context.Context, file assets.File) (string, error) {
	if s.uploader == nil {
		return "", fmt.Errorf("upload %s: no uploader configured", file.Name)
	}
	url, err := s.uploader.Upload(ctx, file)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", file.Name, err)
	}
	return url, nil
}

func putString(f map[string]any, key string, v *string) {
	if v != nil {
		f[key] = *v
	}
}
