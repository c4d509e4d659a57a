package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/theirongolddev/gastos/internal/apperr"
	"github.com/theirongolddev/gastos/internal/model"
)

// ListCategories returns the full category list. It is never paginated.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/categorias", nil)
	if err != nil {
		return nil, err
	}
	raws, err := decodeList(body, "categorias", "data", "items")
	if err != nil {
		return nil, &apperr.NetworkError{Op: "GET /categorias", Err: err}
	}
	return NormalizeCategories(raws), nil
}

type categoryRequest struct {
	Name string `json:"nombreCategoria"`
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/categorias", categoryRequest{Name: name})
	if err != nil {
		return model.Category{}, err
	}
	cat, ok := NormalizeCategory(body)
	if !ok || cat.Name == "" {
		cat.Name = name
	}
	return cat, nil
}

// DeleteCategory removes a category. The backend refuses while expenses
// still reference it.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/categorias/"+url.PathEscape(id), nil)
	return err
}
