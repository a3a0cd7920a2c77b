package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/floorspaceke/sitecontent/assets"
	"github.com/floorspaceke/sitecontent/catalog"
	"github.com/floorspaceke/sitecontent/store"
)

type fakeUploader struct {
	url   string
	err   error
	calls []assets.File
}

func (f *fakeUploader) Upload(ctx context.Context, file assets.File) (string, error) {
	f.calls = append(f.calls, file)
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func str(s string) *string { return &s }

func TestSaveProductCreateAndPatch(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	svc := NewService(m, nil)

	id, err := svc.SaveProduct(ctx, "", ProductPatch{
		Name:     str("Luxury Oak LVT"),
		Category: str("LVT Flooring"),
		Price:    str("Ksh 2,500 per sqm"),
	}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	doc, err := m.Get(ctx, "products", id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if doc.Fields["name"] != "Luxury Oak LVT" {
		t.Errorf("fields = %v", doc.Fields)
	}
	if _, ok := doc.Fields["createdAt"]; !ok {
		t.Error("created product missing createdAt")
	}
	if _, ok := doc.Fields["updatedAt"]; !ok {
		t.Error("created product missing updatedAt")
	}

	// Patch one field; the rest stays.
	if _, err := svc.SaveProduct(ctx, id, ProductPatch{Price: str("Ksh 3,000 per sqm")}, nil); err != nil {
		t.Fatalf("patch: %v", err)
	}
	doc, _ = m.Get(ctx, "products", id)
	if doc.Fields["price"] != "Ksh 3,000 per sqm" || doc.Fields["name"] != "Luxury Oak LVT" {
		t.Errorf("fields after patch = %v", doc.Fields)
	}

	if _, err := svc.SaveProduct(ctx, "missing", ProductPatch{Name: str("x")}, nil); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("patch of missing product err = %v, want ErrNotFound", err)
	}
}

func TestSaveProductUploadsFileFirst(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	up := &fakeUploader{url: "https://cdn.example.com/oak.jpg"}
	svc := NewService(m, up)

	file := &assets.File{Name: "oak.jpg", ContentType: "image/jpeg", Data: []byte("x")}
	id, err := svc.SaveProduct(ctx, "", ProductPatch{Name: str("Oak")}, file)
	if err != nil {
		t.Fatalf("SaveProduct: %v", err)
	}
	if len(up.calls) != 1 || up.calls[0].Name != "oak.jpg" {
		t.Fatalf("uploader calls = %+v", up.calls)
	}
	doc, _ := m.Get(ctx, "products", id)
	if doc.Fields["image"] != up.url {
		t.Errorf("image = %v, want uploaded URL", doc.Fields["image"])
	}
}

func TestSaveProductUploadFailureAbortsWrite(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	up := &fakeUploader{err: errors.New("asset host down")}
	svc := NewService(m, up)

	file := &assets.File{Name: "oak.jpg", ContentType: "image/jpeg", Data: []byte("x")}
	if _, err := svc.SaveProduct(ctx, "", ProductPatch{Name: str("Oak")}, file); err == nil {
		t.Fatal("expected upload error")
	}
	docs, err := m.GetAll(ctx, "products", "", false)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("failed upload still wrote %d documents", len(docs))
	}
}

func TestSaveProductWithoutUploaderRejectsFile(t *testing.T) {
	svc := NewService(store.NewMemory(), nil)
	file := &assets.File{Name: "oak.jpg", ContentType: "image/jpeg"}
	if _, err := svc.SaveProduct(context.Background(), "", ProductPatch{}, file); err == nil {
		t.Fatal("expected error when no uploader is configured")
	}
}

func TestToggleTestimonialFlipsOnlyPublished(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	svc := NewService(m, nil)

	id, err := svc.SaveTestimonial(ctx, "", TestimonialPatch{
		Name:      str("Amina"),
		Text:      str("Great work"),
		Published: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("SaveTestimonial: %v", err)
	}
	if err := svc.ToggleTestimonial(ctx, id, false); err != nil {
		t.Fatalf("ToggleTestimonial: %v", err)
	}
	doc, _ := m.Get(ctx, "testimonials", id)
	if doc.Fields["published"] != false || doc.Fields["name"] != "Amina" {
		t.Errorf("fields after toggle = %v", doc.Fields)
	}

	// Toggling back restores the original state.
	if err := svc.ToggleTestimonial(ctx, id, true); err != nil {
		t.Fatalf("ToggleTestimonial: %v", err)
	}
	doc, _ = m.Get(ctx, "testimonials", id)
	if doc.Fields["published"] != true {
		t.Errorf("published after double toggle = %v, want true", doc.Fields["published"])
	}

	if err := svc.ToggleTestimonial(ctx, "missing", true); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("toggle missing testimonial err = %v, want ErrNotFound", err)
	}
}

func TestSaveGalleryItemInfersKind(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	up := &fakeUploader{url: "https://cdn.example.com/clip.mp4"}
	svc := NewService(m, up)

	file := assets.File{Name: "clip.mp4", ContentType: "video/mp4", Data: []byte("x")}
	id, err := svc.SaveGalleryItem(ctx, GalleryPatch{Title: str("Office refit")}, file)
	if err != nil {
		t.Fatalf("SaveGalleryItem: %v", err)
	}
	doc, _ := m.Get(ctx, "gallery", id)
	if doc.Fields["type"] != catalog.MediaVideo {
		t.Errorf("type = %v, want video", doc.Fields["type"])
	}
	if doc.Fields["url"] != up.url {
		t.Errorf("url = %v", doc.Fields["url"])
	}
}

func TestUpdateSiteConfigMerges(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	svc := NewService(m, nil)

	cfg, err := svc.GetSiteConfig(ctx)
	if err != nil {
		t.Fatalf("GetSiteConfig: %v", err)
	}
	if cfg != nil {
		t.Fatalf("config before first write = %+v, want nil", cfg)
	}

	if err := svc.UpdateSiteConfig(ctx, ConfigPatch{HeroTitle: str("Hello"), Phone: str("+254 700 000 001")}); err != nil {
		t.Fatalf("UpdateSiteConfig: %v", err)
	}
	if err := svc.UpdateSiteConfig(ctx, ConfigPatch{HeroTitle: str("Updated")}); err != nil {
		t.Fatalf("UpdateSiteConfig: %v", err)
	}

	cfg, err = svc.GetSiteConfig(ctx)
	if err != nil {
		t.Fatalf("GetSiteConfig: %v", err)
	}
	if cfg.HeroTitle != "Updated" || cfg.Phone != "+254 700 000 001" {
		t.Errorf("config after merge = %+v", cfg)
	}
}

func TestListProductsNewestFirst(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	svc := NewService(m, nil)

	firstID, err := svc.SaveProduct(ctx, "", ProductPatch{Name: str("first")}, nil)
	if err != nil {
		t.Fatalf("SaveProduct: %v", err)
	}
	if _, err := svc.SaveProduct(ctx, "", ProductPatch{Name: str("second")}, nil); err != nil {
		t.Fatalf("SaveProduct: %v", err)
	}
	// Touching the first product bumps it back to the top.
	if _, err := svc.SaveProduct(ctx, firstID, ProductPatch{Price: str("Ksh 1")}, nil); err != nil {
		t.Fatalf("SaveProduct: %v", err)
	}

	items, err := svc.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(items) != 2 || items[0].ID != firstID {
		t.Errorf("listing = %+v, want updated product first", items)
	}
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	svc := NewService(m, nil)

	id, err := svc.SaveProduct(ctx, "", ProductPatch{Name: str("Oak")}, nil)
	if err != nil {
		t.Fatalf("SaveProduct: %v", err)
	}
	if err := svc.DeleteProduct(ctx, id); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	if _, err := m.Get(ctx, "products", id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("deleted product still readable, err = %v", err)
	}
}

func TestSeedDefaults(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	svc := NewService(m, nil)

	if err := svc.SeedDefaults(ctx); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	products, err := svc.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != len(catalog.DefaultProducts()) {
		t.Errorf("seeded %d products, want %d", len(products), len(catalog.DefaultProducts()))
	}
	gallery, err := svc.ListGallery(ctx)
	if err != nil {
		t.Fatalf("ListGallery: %v", err)
	}
	if len(gallery) != len(catalog.DefaultGallery()) {
		t.Errorf("seeded %d gallery items, want %d", len(gallery), len(catalog.DefaultGallery()))
	}
	cfg, err := svc.GetSiteConfig(ctx)
	if err != nil {
		t.Fatalf("GetSiteConfig: %v", err)
	}
	if cfg == nil || cfg.HeroTitle == "" {
		t.Errorf("seeded config = %+v", cfg)
	}

	if err := svc.SeedDefaults(ctx); !errors.Is(err, ErrAlreadySeeded) {
		t.Errorf("second seed err = %v, want ErrAlreadySeeded", err)
	}
}

func TestSeedRefusedWhenConfigExists(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	svc := NewService(m, nil)

	if err := svc.UpdateSiteConfig(ctx, ConfigPatch{HeroTitle: str("live")}); err != nil {
		t.Fatalf("UpdateSiteConfig: %v", err)
	}
	if err := svc.SeedDefaults(ctx); !errors.Is(err, ErrAlreadySeeded) {
		t.Errorf("seed with existing config err = %v, want ErrAlreadySeeded", err)
	}
}

func boolPtr(b bool) *bool { return &b }
