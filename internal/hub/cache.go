package hub

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"hubgrip/internal/domain"
)

// PageCache keeps recently fetched result pages, keyed by SearchInput.Key
type PageCache struct {
	lru *expirable.LRU[string, *domain.SearchResults]
}

// NewPageCache creates a cache holding up to size pages for ttl
func NewPageCache(size int, ttl time.Duration) *PageCache {
	if size <= 0 {
		size = 128
	}
	return &PageCache{lru: expirable.NewLRU[string, *domain.SearchResults](size, nil, ttl)}
}

// Get returns a copy of the cached page
func (c *PageCache) Get(in SearchInput) (*domain.SearchResults, bool) {
	r, ok := c.lru.Get(in.Key())
	if !ok {
		return nil, false
	}
	cp := *r
	return &cp, true
}

// Add stores a page
func (c *PageCache) Add(in SearchInput, r *domain.SearchResults) {
	cp := *r
	c.lru.Add(in.Key(), &cp)
}

// Len returns the number of cached pages
func (c *PageCache) Len() int {
	return c.lru.Len()
}

// Purge drops every page
func (c *PageCache) Purge() {
	c.lru.Purge()
}

// CachingSearcher serves pages from a PageCache and collapses concurrent
// requests for the same page into one upstream call
type CachingSearcher struct {
	next  Searcher
	cache *PageCache
	group singleflight.Group
}

// NewCachingSearcher wraps next with cache
func NewCachingSearcher(next Searcher, cache *PageCache) *CachingSearcher {
	return &CachingSearcher{next: next, cache: cache}
}

// SearchPackages returns the cached page or fetches it. A caller whose ctx
// ends stops waiting, but the shared fetch completes and fills the cache.
func (s *CachingSearcher) SearchPackages(ctx context.Context, in SearchInput) (*domain.SearchResults, error) {
	if r, ok := s.cache.Get(in); ok {
		logger.Debugf("cache hit (%s)", in)
		return r, nil
	}

	key := in.Key()
	ch := s.group.DoChan(key, func() (interface{}, error) {
		r, err := s.next.SearchPackages(context.WithoutCancel(ctx), in)
		if err != nil {
			return nil, err
		}
		s.cache.Add(in, r)
		return r, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		cp := *res.Val.(*domain.SearchResults)
		return &cp, nil
	}
}
