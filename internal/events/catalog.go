package events

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"confhub-backend/internal/models"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// CategoryRule maps one tag to its whole-word keyword alternatives.
type CategoryRule struct {
	Tag      models.Tag `yaml:"tag"`
	Keywords []string   `yaml:"keywords"`
}

type KnownLocation struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

type ImagePool struct {
	Tag  models.Tag `yaml:"tag"`
	URLs []string   `yaml:"urls"`
}

// Catalog is the data that drives classification and import: the ordered
// category rules, the known-location table and the per-tag image pools.
type Catalog struct {
	DefaultTag   models.Tag            `yaml:"default_tag"`
	Categories   []CategoryRule        `yaml:"categories"`
	Phrases      map[models.Tag]string `yaml:"phrases"`
	Locations    []KnownLocation       `yaml:"locations"`
	DefaultImage string                `yaml:"default_image"`
	Images       []ImagePool           `yaml:"images"`
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("events: embedded catalog: %v", err))
	}
	return c
}

// LoadCatalog reads a catalog file. An empty path yields the built-in catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if c.DefaultTag == "" {
		return errors.New("catalog: default_tag is required")
	}
	for i, r := range c.Categories {
		if r.Tag == "" {
			return fmt.Errorf("catalog: category %d has no tag", i)
		}
		if len(r.Keywords) == 0 {
			return fmt.Errorf("catalog: category %q has no keywords", r.Tag)
		}
	}
	for _, p := range c.Images {
		if len(p.URLs) == 0 {
			return fmt.Errorf("catalog: image pool %q is empty", p.Tag)
		}
	}
	return nil
}

func (c *Catalog) imagePool(tag models.Tag) []string {
	for _, p := range c.Images {
		if p.Tag == tag {
			return p.URLs
		}
	}
	return nil
}
