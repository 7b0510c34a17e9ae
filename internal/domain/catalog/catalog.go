package catalog

import (
	"errors"

	"github.com/example/storefront/internal/domain/cart"
)

var (
	ErrPackageNotFound = errors.New("package not found")
)

// Feature is a single line in a package's feature list.
type Feature struct {
	Name     string `json:"name"`
	Included bool   `json:"included"`
}

// Package is a purchasable offering, either a main product or an add-on.
type Package struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int       `json:"price"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	Features    []Feature `json:"features,omitempty"`
	Popular     bool      `json:"popular,omitempty"`
}

// IsAddon reports whether the package is an add-on, using the shared
// id-based predicate so the catalog and the cart never disagree.
func (p Package) IsAddon() bool {
	return cart.IsAddonID(p.ID)
}

type Subcategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Category struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Subcategories []Subcategory `json:"subcategories"`
}

// Filter narrows a catalog listing. A nil Addon means both kinds.
type Filter struct {
	Category string
	Addon    *bool
}

// Service serves the read-only product catalog. The data is fixed at
// startup; there is no inventory behind it.
type Service struct {
	packages   []Package
	categories []Category
}

func NewService() *Service {
	return &Service{
		packages:   defaultPackages,
		categories: defaultCategories,
	}
}

// List returns the packages matching the filter.
func (s *Service) List(filter Filter) []Package {
	var out []Package
	for _, p := range s.packages {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Addon != nil && p.IsAddon() != *filter.Addon {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Get returns the package with the given id.
func (s *Service) Get(id string) (*Package, error) {
	for _, p := range s.packages {
		if p.ID == id {
			pkg := p
			return &pkg, nil
		}
	}
	return nil, ErrPackageNotFound
}

// Categories returns the navigation categories.
func (s *Service) Categories() []Category {
	return s.categories
}
