package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/Levipasha/retrend/internal/models"
)

// GetProducts lists the products posted near location.
func (c *Client) GetProducts(ctx context.Context, location string) ([]models.Product, error) {
	query := url.Values{}
	query.Set("location", location)

	body, err := c.get(ctx, "/getProducts", query)
	if err != nil {
		return nil, err
	}

	products, err := decodeProducts(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse products response: %w", err)
	}
	return products, nil
}

// AddProduct posts a new listing. Any 2xx reply means the listing was saved.
// The reply is decoded when it is a product record; otherwise an empty
// product is returned.
func (c *Client) AddProduct(ctx context.Context, payload models.ProductPayload) (*models.Product, error) {
	body, err := c.postAuthed(ctx, "/add_product", payload)
	if err != nil {
		return nil, err
	}

	var product models.Product
	if len(body) > 0 {
		if err := json.Unmarshal(body, &product); err != nil {
			c.logger.WithError(err).Debug("add product reply is not a product record")
			return &models.Product{}, nil
		}
	}

	return &product, nil
}

// decodeProducts accepts either a bare array or an object wrapping one under
// "products" or "data".
func decodeProducts(body []byte) ([]models.Product, error) {
	var products []models.Product
	if err := json.Unmarshal(body, &products); err == nil {
		return products, nil
	}

	var wrapped struct {
		Products []models.Product `json:"products"`
		Data     []models.Product `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Products != nil {
		return wrapped.Products, nil
	}
	return wrapped.Data, nil
}
