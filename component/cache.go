package component

import (
	"maps"
	"slices"

	gocache "github.com/patrickmn/go-cache"
)

// classCache is the name -> class arena of one Factory.
//
// Slots are reserved with Add, so a name that already holds a class is never
// replaced. Entries never expire; release exists only to roll back the shells
// of a resolution that failed.
type classCache struct {
	slots *gocache.Cache
}

func newClassCache() *classCache {
	return &classCache{slots: gocache.New(gocache.NoExpiration, 0)}
}

// lookup returns the class stored under name.
func (c *classCache) lookup(name string) (*Class, bool) {
	v, found := c.slots.Get(name)
	if !found {
		return nil, false
	}
	cls, ok := v.(*Class)
	return cls, ok
}

// reserve stores cls under name. It returns false when the slot is taken.
func (c *classCache) reserve(name string, cls *Class) bool {
	return c.slots.Add(name, cls, gocache.NoExpiration) == nil
}

// release drops the given slots.
func (c *classCache) release(names ...string) {
	for _, name := range names {
		c.slots.Delete(name)
	}
}

// names returns the cached names in sorted order.
func (c *classCache) names() []string {
	return slices.Sorted(maps.Keys(c.slots.Items()))
}

func (c *classCache) len() int { return c.slots.ItemCount() }
