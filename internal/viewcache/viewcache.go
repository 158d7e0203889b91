package viewcache

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"
	"github.com/vincecoscia/retriever-ai/internal/models"
)

const clientListingKey = "admin:clients"

// ClientListing caches the admin clients listing between reads. Every admin
// write invalidates it so the next read reflects the change, mirroring the
// per-page revalidation the admin forms expect.
type ClientListing struct {
	cache *sturdyc.Client[[]models.Organization]
}

// NewClientListing creates the listing cache. Capacity is tiny on purpose:
// there is exactly one cached view.
func NewClientListing() *ClientListing {
	return &ClientListing{
		cache: sturdyc.New[[]models.Organization](16, 1, 5*time.Minute, 10),
	}
}

// GetOrFetch returns the cached listing, fetching it when absent or expired.
func (c *ClientListing) GetOrFetch(ctx context.Context, fetch func(ctx context.Context) ([]models.Organization, error)) ([]models.Organization, error) {
	return c.cache.GetOrFetch(ctx, clientListingKey, fetch)
}

// Invalidate drops the cached listing.
func (c *ClientListing) Invalidate() {
	c.cache.Delete(clientListingKey)
}
