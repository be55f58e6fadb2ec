package refdata

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"investdesk/pkg/sentinel"
)

//go:embed seed/*.json
var seedFS embed.FS

// Catalog serves the read-only reference collections. It is loaded once at
// startup; workflows fetch from it per validation call.
type Catalog struct {
	clients   []Client
	products  []Product
	employees []Employee
	templates []Template
	profiles  []InvestmentProfile
}

// Embedded loads the catalog from the seed data compiled into the binary.
func Embedded() (*Catalog, error) {
	return load(func(name string) ([]byte, error) {
		return seedFS.ReadFile("seed/" + name)
	})
}

// LoadDir loads the catalog from JSON files in dir, falling back to the
// embedded seed for any file that is absent.
func LoadDir(dir string) (*Catalog, error) {
	return load(func(name string) ([]byte, error) {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			return seedFS.ReadFile("seed/" + name)
		}
		return data, err
	})
}

func load(read func(name string) ([]byte, error)) (*Catalog, error) {
	c := &Catalog{}
	for name, target := range map[string]any{
		"clients.json":     &c.clients,
		"products.json":    &c.products,
		"employees.json":   &c.employees,
		"templates.json":   &c.templates,
		"investments.json": &c.profiles,
	} {
		data, err := read(name)
		if err != nil {
			return nil, fmt.Errorf("load reference data %s: %w", name, err)
		}
		if err := json.Unmarshal(data, target); err != nil {
			return nil, fmt.Errorf("decode reference data %s: %w", name, err)
		}
	}
	return c, nil
}

// Clients returns all clients.
func (c *Catalog) Clients() []Client { return append([]Client{}, c.clients...) }

// Products returns all products.
func (c *Catalog) Products() []Product { return append([]Product{}, c.products...) }

// Employees returns all employees.
func (c *Catalog) Employees() []Employee { return append([]Employee{}, c.employees...) }

// Templates returns all proposal templates.
func (c *Catalog) Templates() []Template { return append([]Template{}, c.templates...) }

// Profiles returns the seed investment profiles. internal/profile copies these
// into its own store on first run; live profile reads go through that store.
func (c *Catalog) Profiles() []InvestmentProfile {
	return append([]InvestmentProfile{}, c.profiles...)
}

// ProductByID looks up a product, returning sentinel.ErrNotFound when the
// shelf has no such product.
func (c *Catalog) ProductByID(_ context.Context, id string) (Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, sentinel.ErrNotFound
}
