package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gastos/internal/apperr"
	"github.com/theirongolddev/gastos/internal/model"
)

// GetUser fetches the profile and budget for a user.
func (c *Client) GetUser(ctx context.Context, id string) (model.Profile, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/usuarios/"+url.PathEscape(id), nil)
	if err != nil {
		return model.Profile{}, err
	}
	p, ok := NormalizeProfile(body)
	if !ok {
		return model.Profile{}, &apperr.NetworkError{Op: "GET /usuarios/:id", Message: "unexpected profile payload"}
	}
	if p.ID == "" {
		p.ID = id
	}
	return p, nil
}

type profileUpdate struct {
	Name  string `json:"nombre"`
	Email string `json:"correo"`
	Phone string `json:"telefono,omitempty"`
}

// UpdateUser replaces the editable profile fields.
func (c *Client) UpdateUser(ctx context.Context, id, name, email, phone string) error {
	_, err := c.doJSON(ctx, http.MethodPatch, "/usuarios/"+url.PathEscape(id), profileUpdate{
		Name:  name,
		Email: email,
		Phone: phone,
	})
	return err
}

type budgetUpdate struct {
	Budget json.Number `json:"presupuesto"`
}

// UpdateBudget overwrites the user's budget total.
func (c *Client) UpdateBudget(ctx context.Context, id string, total decimal.Decimal) error {
	_, err := c.doJSON(ctx, http.MethodPatch, "/usuarios/"+url.PathEscape(id)+"/presupuesto", budgetUpdate{
		Budget: json.Number(total.String()),
	})
	return err
}

// UploadPhoto sends the image as multipart field "file" and returns the
// stored URL. Older backends only expose /usuarios/photo, so a 404 on the
// per-user route falls back to it.
func (c *Client) UploadPhoto(ctx context.Context, id, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("api: reading photo: %w", err)
	}

	paths := []string{"/usuarios/photo"}
	if id != "" {
		paths = []string{"/usuarios/" + url.PathEscape(id) + "/foto", "/usuarios/photo"}
	}

	var lastErr error
	for _, p := range paths {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", filepath.Base(filename))
		if err != nil {
			return "", fmt.Errorf("api: building upload: %w", err)
		}
		if _, err := fw.Write(data); err != nil {
			return "", fmt.Errorf("api: building upload: %w", err)
		}
		if err := mw.Close(); err != nil {
			return "", fmt.Errorf("api: building upload: %w", err)
		}

		body, err := c.do(ctx, http.MethodPost, p, mw.FormDataContentType(), &buf)
		if err != nil {
			lastErr = err
			if statusOf(err) == http.StatusNotFound {
				continue
			}
			return "", err
		}

		var resp struct {
			URL    string `json:"url"`
			Foto   string `json:"foto"`
			Imagen string `json:"imagen"`
		}
		_ = json.Unmarshal(body, &resp)
		switch {
		case resp.URL != "":
			return resp.URL, nil
		case resp.Foto != "":
			return resp.Foto, nil
		default:
			return resp.Imagen, nil
		}
	}
	return "", lastErr
}
