package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCatalog  = errors.New("catalog has no items")
	ErrEmptyName     = errors.New("catalog item name is empty")
	ErrDuplicateItem = errors.New("catalog item is listed twice")
	ErrNegativePrice = errors.New("catalog item price is negative")
)

// Item is one sellable product. Price is in minor currency units.
type Item struct {
	Name  string `json:"name" yaml:"name"`
	Price int64  `json:"price" yaml:"price"`
}

// Catalog is an ordered, read-only price list. It is safe for concurrent use
// because nothing mutates it after New returns.
type Catalog struct {
	items  []Item
	byName map[string]int64
}

// New validates items and returns a catalog that keeps their order.
func New(items []Item) (*Catalog, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{
		items:  make([]Item, 0, len(items)),
		byName: make(map[string]int64, len(items)),
	}
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		if it.Price < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNegativePrice, name)
		}
		if _, dup := c.byName[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateItem, name)
		}
		c.byName[name] = it.Price
		c.items = append(c.items, Item{Name: name, Price: it.Price})
	}
	return c, nil
}

// Default is the price list the bakery shipped with.
func Default() *Catalog {
	c, _ := New([]Item{
		{Name: "Cake", Price: 5000},
		{Name: "Bread", Price: 2000},
		{Name: "Cookies", Price: 3000},
	})
	return c
}

// Price returns the unit price of an item by exact name.
func (c *Catalog) Price(name string) (int64, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// Items returns a copy of the catalog in display order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Names returns item names in display order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.items))
	for i, it := range c.items {
		names[i] = it.Name
	}
	return names
}

func (c *Catalog) Len() int {
	return len(c.items)
}
