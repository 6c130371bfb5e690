package events

import (
	"hash/fnv"
	"math/rand/v2"
	"sync"

	"confhub-backend/internal/models"
)

// ImagePicker chooses a placeholder image for an imported event.
type ImagePicker interface {
	Pick(title string, tags []models.Tag) string
}

func candidatePools(c *Catalog, tags []models.Tag) [][]string {
	var pools [][]string
	for _, t := range tags {
		if p := c.imagePool(t); len(p) > 0 {
			pools = append(pools, p)
		}
	}
	return pools
}

// NewImagePicker returns a RandomPicker seeded with seed when random is set,
// and a HashPicker otherwise.
func NewImagePicker(c *Catalog, random bool, seed uint64) ImagePicker {
	if random {
		return NewRandomPicker(c, seed)
	}
	return NewHashPicker(c)
}

// HashPicker maps the title onto the tag pools so that the same title always
// receives the same image.
type HashPicker struct {
	catalog *Catalog
}

func NewHashPicker(c *Catalog) *HashPicker {
	return &HashPicker{catalog: c}
}

func (p *HashPicker) Pick(title string, tags []models.Tag) string {
	pools := candidatePools(p.catalog, tags)
	if len(pools) == 0 {
		return p.catalog.DefaultImage
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(title))
	sum := h.Sum64()

	pool := pools[sum%uint64(len(pools))]
	return pool[(sum/uint64(len(pools)))%uint64(len(pool))]
}

// RandomPicker picks a pool and then an image uniformly at random.
type RandomPicker struct {
	catalog *Catalog

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomPicker(c *Catalog, seed uint64) *RandomPicker {
	return &RandomPicker{catalog: c, rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *RandomPicker) Pick(_ string, tags []models.Tag) string {
	pools := candidatePools(p.catalog, tags)
	if len(pools) == 0 {
		return p.catalog.DefaultImage
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	pool := pools[p.rnd.IntN(len(pools))]
	return pool[p.rnd.IntN(len(pool))]
}
