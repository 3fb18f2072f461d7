// Package catalog loads the credit packages on sale from a YAML file.
package catalog

import (
	"fmt"
	"io"
	"os"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// file is the on-disk layout of the catalog.
type file struct {
	Packages []packageEntry `yaml:"packages" validate:"dive"`
}

type packageEntry struct {
	Code               string `yaml:"code" validate:"required"`
	Name               string `yaml:"name" validate:"required"`
	ProductID          string `yaml:"product_id" validate:"required"`
	CreditsPerPackage  int64  `yaml:"credits_per_package" validate:"gt=0"`
	Price              string `yaml:"price" validate:"required,numeric"`
	ValidityYears      int    `yaml:"validity_years" validate:"gte=0"`
	DiscountPercentage string `yaml:"discount_percentage" validate:"omitempty,numeric"`
}

var validate = validator.New()

// LoadFile reads the catalog at path. An empty path yields an empty catalog.
func LoadFile(path string) (domain.CreditPackageCatalog, error) {
	if path == "" {
		return domain.CreditPackageCatalog{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open credit package catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates a catalog. Codes and product ids must be unique.
func Load(r io.Reader) (domain.CreditPackageCatalog, error) {
	var doc file
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode credit package catalog: %w", err)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("invalid credit package catalog: %w", err)
	}

	catalog := make(domain.CreditPackageCatalog, len(doc.Packages))
	codes := make(map[string]bool, len(doc.Packages))
	for _, entry := range doc.Packages {
		if codes[entry.Code] {
			return nil, fmt.Errorf("invalid credit package catalog: duplicate code %s", entry.Code)
		}
		if _, ok := catalog[entry.ProductID]; ok {
			return nil, fmt.Errorf("invalid credit package catalog: product %s used by more than one package", entry.ProductID)
		}
		codes[entry.Code] = true

		pkg, err := entry.toDomain()
		if err != nil {
			return nil, err
		}
		catalog[entry.ProductID] = pkg
	}
	return catalog, nil
}

func (e packageEntry) toDomain() (domain.CreditPackage, error) {
	price, err := decimal.NewFromString(e.Price)
	if err != nil {
		return domain.CreditPackage{}, fmt.Errorf("package %s: price: %w", e.Code, err)
	}
	discount := decimal.Zero
	if e.DiscountPercentage != "" {
		if discount, err = decimal.NewFromString(e.DiscountPercentage); err != nil {
			return domain.CreditPackage{}, fmt.Errorf("package %s: discount: %w", e.Code, err)
		}
	}
	return domain.CreditPackage{
		Code:               e.Code,
		Name:               e.Name,
		ProductID:          e.ProductID,
		CreditsPerPackage:  e.CreditsPerPackage,
		Price:              price,
		ValidityYears:      e.ValidityYears,
		DiscountPercentage: discount,
	}, nil
}
