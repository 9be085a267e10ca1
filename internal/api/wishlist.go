package api

import (
	"context"
	"fmt"

	"github.com/Levipasha/retrend/internal/models"
)

// ListWishlist returns the signed-in user's wishlist.
func (c *Client) ListWishlist(ctx context.Context) ([]models.Product, error) {
	body, err := c.getAuthed(ctx, "/wishlist")
	if err != nil {
		return nil, err
	}

	items, err := decodeProducts(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse wishlist response: %w", err)
	}
	return items, nil
}

// CheckSession validates the bearer token by fetching the wishlist.
func (c *Client) CheckSession(ctx context.Context) error {
	_, err := c.ListWishlist(ctx)
	return err
}
