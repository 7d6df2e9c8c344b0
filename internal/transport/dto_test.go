package transport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/product_service/internal/models"
)

func strPtr(s string) *string { return &s }

func TestDecodeProductFields_Partial(t *testing.T) {
	f, err := DecodeProductFields(strings.NewReader(`{"name": "new product value", "extra": true}`))
	require.NoError(t, err)

	assert.True(t, f.Name.Set)
	assert.Equal(t, "new product value", *f.Name.Value)
	assert.False(t, f.Description.Set)
	assert.False(t, f.Price.Set)
	assert.False(t, f.Stock.Set)
}

func TestDecodeProductFields_Null(t *testing.T) {
	f, err := DecodeProductFields(strings.NewReader(`{"description": null, "price": null}`))
	require.NoError(t, err)

	assert.True(t, f.Description.Set)
	assert.Nil(t, f.Description.Value)
	assert.True(t, f.Price.Set)
	assert.Nil(t, f.Price.Value)
}

func TestDecodeProductFields_InvalidTypes(t *testing.T) {
	bodies := map[string]string{
		"price as string":    `{"price": "not a number"}`,
		"stock as float":     `{"stock": 1.5}`,
		"stock as string":    `{"stock": "3"}`,
		"name as number":     `{"name": 12}`,
		"description as obj": `{"description": {}}`,
		"array body":         `[1, 2]`,
		"null body":          `null`,
		"empty body":         ``,
		"broken json":        `{"name": `,
		"trailing garbage":   `{"name": "x"} trailing-garbage`,
		"two objects":        `{"name": "x"}{"name": "y"}`,
		"stray brace":        `{"name": "x"}}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeProductFields(strings.NewReader(body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidData)
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	f, err := DecodeProductFields(strings.NewReader(`{"name": null}`))
	require.NoError(t, err)
	assert.ErrorIs(t, f.ValidateUpdate(), ErrInvalidData)

	f, err = DecodeProductFields(strings.NewReader(`{"description": null}`))
	require.NoError(t, err)
	assert.NoError(t, f.ValidateUpdate())
}

func TestApplyTo_KeepsOmittedFields(t *testing.T) {
	price := 19.99
	p := models.Product{ID: 1, Name: strPtr("old product"), Description: strPtr("desc"), Price: &price}

	f, err := DecodeProductFields(strings.NewReader(`{"name": "new product value", "stock": 3}`))
	require.NoError(t, err)
	f.ApplyTo(&p)

	assert.Equal(t, "new product value", *p.Name)
	assert.Equal(t, "desc", *p.Description)
	assert.Equal(t, 19.99, *p.Price)
	assert.Equal(t, 3, *p.Stock)
}

func TestNewProduct(t *testing.T) {
	f, err := DecodeProductFields(strings.NewReader(`{"name": "test product", "price": 19.99}`))
	require.NoError(t, err)

	p := f.NewProduct()
	assert.Equal(t, "test product", *p.Name)
	assert.Equal(t, 19.99, *p.Price)
	assert.Nil(t, p.Description)
	assert.Nil(t, p.Stock)
}

func TestDecodeProductFields_TrailingWhitespace(t *testing.T) {
	f, err := DecodeProductFields(strings.NewReader("{\"name\": \"x\"}\n  "))
	require.NoError(t, err)
	assert.Equal(t, "x", *f.Name.Value)
}

func TestValidateLimits(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		valid bool
	}{
		{name: "name at limit", body: `{"name": "` + strings.Repeat("a", NameMaxLen) + `"}`, valid: true},
		{name: "name counted in runes", body: `{"name": "` + strings.Repeat("ж", NameMaxLen) + `"}`, valid: true},
		{name: "name too long", body: `{"name": "` + strings.Repeat("a", NameMaxLen+1) + `"}`},
		{name: "description at limit", body: `{"description": "` + strings.Repeat("d", DescriptionMaxLen) + `"}`, valid: true},
		{name: "description too long", body: `{"description": "` + strings.Repeat("d", DescriptionMaxLen+1) + `"}`},
		{name: "stock max int32", body: `{"stock": 2147483647}`, valid: true},
		{name: "stock min int32", body: `{"stock": -2147483648}`, valid: true},
		{name: "stock too large", body: `{"stock": 5000000000}`},
		{name: "stock too small", body: `{"stock": -5000000000}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := DecodeProductFields(strings.NewReader(tt.body))
			require.NoError(t, err)
			if tt.valid {
				assert.NoError(t, f.ValidateLimits())
				assert.NoError(t, f.ValidateUpdate())
				return
			}
			assert.ErrorIs(t, f.ValidateLimits(), ErrInvalidData)
			assert.ErrorIs(t, f.ValidateUpdate(), ErrInvalidData)
		})
	}
}
