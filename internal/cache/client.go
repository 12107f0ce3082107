package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/fairyhunter13/inventory-admin-client/internal/obs"
)

// Fetcher is the consumed read primitive: it produces the query result
// for one resource tag. It is idempotent; retries are not this layer's
// concern.
type Fetcher interface {
	Fetch(ctx context.Context, tag Tag) (any, error)
}

// Mutator is the consumed write primitive.
type Mutator interface {
	Mutate(ctx context.Context, kind MutationKind, payload any) (any, error)
}

// ApplyHook observes a fetched value the moment it is accepted into the
// cache, together with the fetch sequence that produced it. Hooks run
// under the cache lock so observers never see values out of order.
type ApplyHook func(seq uint64, value any)

type entry struct {
	value      any
	has        bool
	stale      bool
	lastIssued uint64
}

// Client is the tag-keyed query cache. A fresh entry is served from
// memory; a missing or stale entry triggers exactly one refetch shared
// by all concurrent readers. Invalidation is a logical mark, never an
// eager refetch.
type Client struct {
	fetch  Fetcher
	mutate Mutator
	graph  *Graph

	mu      sync.Mutex
	entries map[Tag]*entry
	hooks   map[Tag][]ApplyHook
	seq     Sequencer
	group   singleflight.Group

	fetches  atomic.Uint64
	discards atomic.Uint64
}

// New returns a cold cache wired to the given primitives and graph.
func New(fetch Fetcher, mutate Mutator, graph *Graph) *Client {
	return &Client{
		fetch:   fetch,
		mutate:  mutate,
		graph:   graph,
		entries: make(map[Tag]*entry),
		hooks:   make(map[Tag][]ApplyHook),
	}
}

// OnApply registers a hook invoked whenever a fetched value for the tag
// is accepted.
func (c *Client) OnApply(tag Tag, hook ApplyHook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks[tag] = append(c.hooks[tag], hook)
}

func (c *Client) ent(tag Tag) *entry {
	e, ok := c.entries[tag]
	if !ok {
		e = &entry{}
		c.entries[tag] = e
	}
	return e
}

// Get returns the cached value for the tag, refetching when the entry is
// cold or stale. Concurrent readers of the same stale entry share a
// single in-flight refetch. On refetch failure the last known value (if
// any) stays visible and is returned alongside the error.
func (c *Client) Get(ctx context.Context, tag Tag) (any, error) {
	c.mu.Lock()
	e := c.ent(tag)
	if e.has && !e.stale {
		v := e.value
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(string(tag), func() (any, error) {
		seq := c.seq.Next()
		c.mu.Lock()
		c.ent(tag).lastIssued = seq
		c.mu.Unlock()

		c.fetches.Add(1)
		val, err := c.fetch.Fetch(ctx, tag)
		if err != nil {
			return nil, err
		}
		c.apply(tag, seq, val)
		return val, nil
	})
	if err != nil {
		c.mu.Lock()
		e := c.ent(tag)
		last, has := e.value, e.has
		c.mu.Unlock()
		if has {
			return last, err
		}
		return nil, err
	}
	return v, nil
}

// apply accepts a fetched value unless a newer fetch for the tag has
// been issued since, in which case the response is discarded.
func (c *Client) apply(tag Tag, seq uint64, val any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.ent(tag)
	if seq < e.lastIssued {
		c.discards.Add(1)
		obs.Logger.Info("fetch_superseded", "tag", string(tag), "sequence", seq, "latest", e.lastIssued)
		return
	}
	e.value = val
	e.has = true
	e.stale = false
	for _, h := range c.hooks[tag] {
		h(seq, val)
	}
}

// Invalidate marks the given tags stale. The next reader of each tag
// triggers one refetch; an in-flight fetch started before the mark is
// superseded and its response discarded on arrival.
func (c *Client) Invalidate(tags ...Tag) {
	c.mu.Lock()
	for _, tag := range tags {
		e := c.ent(tag)
		e.stale = true
		e.lastIssued = c.seq.Next()
	}
	c.mu.Unlock()
	for _, tag := range tags {
		c.group.Forget(string(tag))
	}
}

// Mutate runs the write primitive and, only on success, marks the
// mutation kind's invalidation set stale. Failed mutations invalidate
// nothing.
func (c *Client) Mutate(ctx context.Context, kind MutationKind, payload any) (any, error) {
	res, err := c.mutate.Mutate(ctx, kind, payload)
	if err != nil {
		return nil, err
	}
	tags := c.graph.Invalidates(kind)
	c.Invalidate(tags...)
	obs.Logger.Info("mutation_applied", "kind", string(kind), "stale_tags", len(tags))
	return res, nil
}

// Stale reports whether the tag currently needs a refetch.
func (c *Client) Stale(tag Tag) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.ent(tag)
	return !e.has || e.stale
}

// Metrics returns fetch and discard counters for observability.
func (c *Client) Metrics() (fetches, discards uint64) {
	return c.fetches.Load(), c.discards.Load()
}
