// Package sitecontent ties the content backend together: the Firestore
// store, the live site-data synchronizer, the admin mutation layer, the
// asset uploader and admin sign-in, all built from one configuration.
//
// Typical use:
//
//	cfg, _ := config.Load("")
//	client, err := sitecontent.New(ctx, cfg)
//	defer client.Close()
//	client.Sync.Start(ctx)
//	data := client.Sync.Snapshot()
package sitecontent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/floorspaceke/sitecontent/admin"
	"github.com/floorspaceke/sitecontent/assets"
	"github.com/floorspaceke/sitecontent/auth"
	"github.com/floorspaceke/sitecontent/config"
	"github.com/floorspaceke/sitecontent/sitesync"
	"github.com/floorspaceke/sitecontent/store"
)

// Client bundles the wired components. Sync must be started by the
// consumer owning its lifecycle; Close releases everything.
type Client struct {
	Store *store.Firestore
	Sync  *sitesync.Synchronizer
	Admin *admin.Service

	// Auth is nil when no identity API key is configured.
	Auth auth.Authenticator
	// Copywriter is nil unless enabled in the configuration.
	Copywriter *admin.Copywriter

	storageClient *storage.Client
	logger        *slog.Logger
}

// New builds a Client from configuration.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := slog.Default()

	st, err := store.NewFirestore(ctx, cfg.ProjectID, cfg.CredentialsFile)
	if err != nil {
		return nil, err
	}

	cols := store.Collections{
		Products:     cfg.Collections.Products,
		Testimonials: cfg.Collections.Testimonials,
		Gallery:      cfg.Collections.Gallery,
		Config:       cfg.Collections.Config,
		ConfigDocID:  cfg.Collections.ConfigDocID,
	}

	c := &Client{Store: st, logger: logger}

	uploader, err := c.buildUploader(ctx, cfg, logger)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	c.Sync = sitesync.New(st, sitesync.WithCollections(cols), sitesync.WithLogger(logger))
	c.Admin = admin.NewService(st, uploader, admin.WithCollections(cols), admin.WithLogger(logger))

	if cfg.Auth.APIKey != "" {
		authenticator, err := auth.NewPasswordAuthenticator(cfg.Auth.APIKey)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		authenticator.Logger = logger
		c.Auth = authenticator
	}

	if cfg.Copywriter.Enabled {
		cw, err := admin.NewCopywriter(ctx, cfg.ProjectID, cfg.Copywriter.Region)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to create copywriter: %w", err)
		}
		c.Copywriter = cw
	}

	logger.Info("Site content client initialized.",
		"projectId", cfg.ProjectID,
		"uploads", cfg.Uploads.Provider,
		"copywriter", cfg.Copywriter.Enabled,
	)
	return c, nil
}

func (c *Client) buildUploader(ctx context.Context, cfg *config.Config, logger *slog.Logger) (assets.Uploader, error) {
	switch cfg.Uploads.Provider {
	case config.ProviderCloudinary:
		up, err := assets.NewCloudinary(cfg.Uploads.CloudName, cfg.Uploads.UploadPreset)
		if err != nil {
			return nil, err
		}
		up.Logger = logger
		return up, nil
	case config.ProviderGCS:
		var opts []option.ClientOption
		if cfg.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
		}
		sc, err := storage.NewClient(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		c.storageClient = sc
		return assets.NewGCS(sc, cfg.Uploads.Bucket, cfg.Uploads.Prefix, logger)
	default:
		return nil, nil
	}
}

// Close stops the synchronizer and releases every held client.
func (c *Client) Close() error {
	var errs []error
	if c.Sync != nil {
		if err := c.Sync.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Copywriter != nil {
		if err := c.Copywriter.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.storageClient != nil {
		if err := c.storageClient.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
