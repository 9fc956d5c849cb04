package aura

import (
	"os"
	"slices"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// Catalog maps aura id to definition. Read-only after loading.
type Catalog struct {
	byID map[int32]*Info
}

type catalogFile struct {
	Auras []*Info `yaml:"auras"`
}

// NewCatalog validates infos and indexes them by id.
func NewCatalog(infos ...*Info) (*Catalog, error) {
	c := &Catalog{byID: make(map[int32]*Info, len(infos))}
	for _, info := range infos {
		if info == nil {
			continue
		}
		info.Normalize()
		if err := info.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[info.ID]; dup {
			return nil, oops.Code("AURA_INVALID").With("aura", info.ID).Errorf("duplicate aura id")
		}
		c.byID[info.ID] = info
	}
	return c, nil
}

// ParseCatalog decodes a YAML document with a top-level "auras" list.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, oops.Code("AURA_INVALID").Wrapf(err, "parsing aura catalog")
	}
	return NewCatalog(f.Auras...)
}

// LoadCatalogFile reads and parses a catalog file.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Code("AURA_INVALID").With("path", path).Wrapf(err, "reading aura catalog")
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, oops.With("path", path).Wrap(err)
	}
	return c, nil
}

// Get returns the definition for id, or nil.
func (c *Catalog) Get(id int32) *Info {
	return c.byID[id]
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.byID)
}

// IDs returns all ids in ascending order.
func (c *Catalog) IDs() []int32 {
	ids := make([]int32, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Merge returns a catalog containing c and other; entries of other win.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	out := &Catalog{byID: make(map[int32]*Info, len(c.byID)+len(other.byID))}
	for id, info := range c.byID {
		out.byID[id] = info
	}
	for id, info := range other.byID {
		out.byID[id] = info
	}
	return out
}
