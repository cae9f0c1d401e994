package cataloging

import (
	"strings"
	"unicode/utf8"

	"github.com/vfg2006/c4-store-api/internal/domain"
)

const (
	minNameLength     = 2
	maxNameLength     = 100
	maxPrice          = 99999.99
	maxDescriptionLen = 500
)

// ProductInput são os dados do formulário de produto
type ProductInput struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Cost        float64 `json:"cost"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	MinStock    int     `json:"minStock"`
	Description string  `json:"description"`
}

func (in ProductInput) normalized() ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)
	return in
}

func (in ProductInput) validate() error {
	verr := domain.NewValidationError()

	switch n := utf8.RuneCountInString(in.Name); {
	case n == 0:
		verr.Add("name", "Este campo é obrigatório")
	case n < minNameLength:
		verr.Add("name", "Mínimo de 2 caracteres")
	case n > maxNameLength:
		verr.Add("name", "Máximo de 100 caracteres")
	}

	if in.Price < 0 {
		verr.Add("price", "Valor mínimo: 0")
	} else if in.Price > maxPrice {
		verr.Add("price", "Valor máximo: 99999.99")
	}
	if in.Cost < 0 {
		verr.Add("cost", "Valor mínimo: 0")
	} else if in.Cost > maxPrice {
		verr.Add("cost", "Valor máximo: 99999.99")
	}

	if in.Stock < 0 {
		verr.Add("stock", "Valor mínimo: 0")
	}
	if in.MinStock < 0 {
		verr.Add("minStock", "Valor mínimo: 0")
	}
	if utf8.RuneCountInString(in.Description) > maxDescriptionLen {
		verr.Add("description", "Máximo de 500 caracteres")
	}

	return verr.OrNil()
}

func (in ProductInput) product() *domain.Product {
	return &domain.Product{
		Name:        in.Name,
		Category:    in.Category,
		Cost:        in.Cost,
		Price:       in.Price,
		Stock:       in.Stock,
		MinStock:    in.MinStock,
		Description: in.Description,
	}
}

func (in ProductInput) patch() domain.Record {
	return domain.Record{
		"name":        in.Name,
		"category":    in.Category,
		"cost":        in.Cost,
		"price":       in.Price,
		"stock":       in.Stock,
		"minStock":    in.MinStock,
		"description": in.Description,
	}
}
