package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/Skotchmaster/product_service/internal/models"
)

var ErrInvalidData = errors.New("invalid data type")

// column limits of the products table
const (
	NameMaxLen        = 100
	DescriptionMaxLen = 255
)

// Field is one optional body key. Set reports whether the key was present,
// Value is nil when it was present as JSON null.
type Field[T any] struct {
	Set   bool
	Value *T
}

func (f *Field[T]) decode(raw json.RawMessage) error {
	var v *T
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	f.Set = true
	f.Value = v
	return nil
}

// ProductFields carries the writable product columns as read from a request body.
type ProductFields struct {
	Name        Field[string]
	Description Field[string]
	Price       Field[float64]
	Stock       Field[int]
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SearchResponse struct {
	Total    int64            `json:"total"`
	Products []models.Product `json:"products"`
}

// DecodeProductFields reads a JSON object and type-checks every known key.
// Unknown keys are ignored.
func DecodeProductFields(r io.Reader) (ProductFields, error) {
	var fields ProductFields

	var body map[string]json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&body); err != nil {
		return fields, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fields, fmt.Errorf("%w: trailing data after body", ErrInvalidData)
	}
	if body == nil {
		return fields, fmt.Errorf("%w: body is not an object", ErrInvalidData)
	}

	decoders := map[string]func(json.RawMessage) error{
		"name":        fields.Name.decode,
		"description": fields.Description.decode,
		"price":       fields.Price.decode,
		"stock":       fields.Stock.decode,
	}
	for key, decode := range decoders {
		raw, ok := body[key]
		if !ok {
			continue
		}
		if err := decode(raw); err != nil {
			return ProductFields{}, fmt.Errorf("%w: %s: %v", ErrInvalidData, key, err)
		}
	}

	return fields, nil
}

// ValidateUpdate rejects values that cannot overwrite an existing row.
func (f ProductFields) ValidateUpdate() error {
	if f.Name.Set && f.Name.Value == nil {
		return fmt.Errorf("%w: name cannot be null", ErrInvalidData)
	}
	return f.ValidateLimits()
}

// ValidateLimits checks supplied values against the column sizes.
// A missing name is left to the NOT NULL constraint.
func (f ProductFields) ValidateLimits() error {
	if f.Name.Value != nil && utf8.RuneCountInString(*f.Name.Value) > NameMaxLen {
		return fmt.Errorf("%w: name longer than %d characters", ErrInvalidData, NameMaxLen)
	}
	if f.Description.Value != nil && utf8.RuneCountInString(*f.Description.Value) > DescriptionMaxLen {
		return fmt.Errorf("%w: description longer than %d characters", ErrInvalidData, DescriptionMaxLen)
	}
	if v := f.Stock.Value; v != nil && (*v < math.MinInt32 || *v > math.MaxInt32) {
		return fmt.Errorf("%w: stock out of range", ErrInvalidData)
	}
	return nil
}

// NewProduct builds a product from the body; absent keys stay null.
func (f ProductFields) NewProduct() models.Product {
	return models.Product{
		Name:        f.Name.Value,
		Description: f.Description.Value,
		Price:       f.Price.Value,
		Stock:       f.Stock.Value,
	}
}

// ApplyTo overwrites the columns present in the body and keeps the rest.
func (f ProductFields) ApplyTo(p *models.Product) {
	if f.Name.Set {
		p.Name = f.Name.Value
	}
	if f.Description.Set {
		p.Description = f.Description.Value
	}
	if f.Price.Set {
		p.Price = f.Price.Value
	}
	if f.Stock.Set {
		p.Stock = f.Stock.Value
	}
}
