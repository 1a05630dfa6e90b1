package handlers

import (
	"net/http"
	"testing"

	"github.com/EO-DataHub/eodhp-resource-services/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProducts() []models.Record {
	return []models.Record{
		{"id": 1, "name": "Laptop", "price": 99.99, "category": "electronics"},
		{"id": 2, "name": "Phone", "price": 199.99, "category": "electronics"},
		{"id": 3, "name": "Case", "price": 29.99, "category": "accessories"},
	}
}

func TestGetProducts_Filters(t *testing.T) {
	api := newTestAPI(t, nil, seedProducts())

	cases := []struct {
		query string
		names []string
	}{
		{"", []string{"Laptop", "Phone", "Case"}},
		{"?category=electronics", []string{"Laptop", "Phone"}},
		{"?category=electronics&minPrice=150", []string{"Phone"}},
		{"?maxPrice=100", []string{"Laptop", "Case"}},
		{"?minPrice=30&maxPrice=150", []string{"Laptop"}},
		{"?minPrice=abc", []string{"Laptop", "Phone", "Case"}},
		{"?category=garden", []string{}},
	}

	for _, tc := range cases {
		w := api.do(t, http.MethodGet, "/products"+tc.query, nil)
		require.Equal(t, http.StatusOK, w.Code, tc.query)

		env := decodeEnvelope(t, w)
		products := dataRecords(t, env, "products")
		require.NotNil(t, env.Results)
		assert.Equal(t, len(tc.names), *env.Results, tc.query)

		names := []string{}
		for _, p := range products {
			names = append(names, p["name"].(string))
		}
		assert.Equal(t, tc.names, names, tc.query)
	}
}

func TestCreateProduct_AssignsNextID(t *testing.T) {
	api := newTestAPI(t, nil, []models.Record{})

	w := api.do(t, http.MethodPost, "/products", map[string]any{"name": "X", "price": 10})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/products/1", w.Header().Get("Location"))
	assert.Equal(t, float64(1), dataRecord(t, decodeEnvelope(t, w), "product")["id"])

	w = api.do(t, http.MethodPost, "/products", map[string]any{"id": 77, "name": "X", "price": 10})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(2), dataRecord(t, decodeEnvelope(t, w), "product")["id"])
}

func TestProductLifecycle(t *testing.T) {
	api := newTestAPI(t, nil, seedProducts())

	w := api.do(t, http.MethodGet, "/products/3", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Case", dataRecord(t, decodeEnvelope(t, w), "product")["name"])

	w = api.do(t, http.MethodPatch, "/products/3", map[string]any{"price": 19.99, "id": 10})
	assert.Equal(t, http.StatusOK, w.Code)
	product := dataRecord(t, decodeEnvelope(t, w), "product")
	assert.Equal(t, float64(3), product["id"])
	assert.Equal(t, 19.99, product["price"])

	w = api.do(t, http.MethodDelete, "/products/3", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 19.99, dataRecord(t, decodeEnvelope(t, w), "product")["price"])

	w = api.do(t, http.MethodGet, "/products/3", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", decodeError(t, w).Message)
}

func TestGetProduct_NonNumericID(t *testing.T) {
	api := newTestAPI(t, nil, seedProducts())

	w := api.do(t, http.MethodGet, "/products/laptop", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", decodeError(t, w).Message)
}
