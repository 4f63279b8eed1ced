// Package backend is the HTTP client for the authoritative claims API. The
// workbench treats the backend as an external collaborator: it loads claim
// state from here and the sync adapter persists mutations through here.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/JasonMadeSomething/claimbench/internal/domain"
)

// APIError is a non-2xx response from the claims API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("claims api returned status %d: %s", e.Status, e.Body)
}

type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

func NewClient(baseURL, authToken string) *Client {
	return &Client{
		baseURL:   baseURL,
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListRooms fetches the claim's rooms.
func (c *Client) ListRooms(ctx context.Context, claimID string) ([]domain.Room, error) {
	var rooms []domain.Room
	if err := c.get(ctx, fmt.Sprintf("/claims/%s/rooms", url.PathEscape(claimID)), &rooms); err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// ListItems fetches the claim's items.
func (c *Client) ListItems(ctx context.Context, claimID string) ([]domain.Item, error) {
	var items []domain.Item
	if err := c.get(ctx, fmt.Sprintf("/claims/%s/items", url.PathEscape(claimID)), &items); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// ListFiles fetches the claim's photos.
func (c *Client) ListFiles(ctx context.Context, claimID string) ([]domain.Photo, error) {
	var photos []domain.Photo
	if err := c.get(ctx, fmt.Sprintf("/claims/%s/files", url.PathEscape(claimID)), &photos); err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	return photos, nil
}

// LoadClaim fetches all three collections of a claim.
func (c *Client) LoadClaim(ctx context.Context, claimID string) ([]domain.Photo, []domain.Item, []domain.Room, error) {
	photos, err := c.ListFiles(ctx, claimID)
	if err != nil {
		return nil, nil, nil, err
	}
	items, err := c.ListItems(ctx, claimID)
	if err != nil {
		return nil, nil, nil, err
	}
	rooms, err := c.ListRooms(ctx, claimID)
	if err != nil {
		return nil, nil, nil, err
	}
	return photos, items, rooms, nil
}

// CreateItem persists a new item; the response is the canonical entity.
func (c *Client) CreateItem(ctx context.Context, item domain.Item) (*domain.Item, error) {
	var out domain.Item
	if err := c.do(ctx, http.MethodPost, "/items", item, &out); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return &out, nil
}

// UpdateItem persists item attribute changes.
func (c *Client) UpdateItem(ctx context.Context, item domain.Item) (*domain.Item, error) {
	var out domain.Item
	if err := c.do(ctx, http.MethodPut, "/items/"+url.PathEscape(item.ID), item, &out); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return &out, nil
}

// DeleteItem removes an item.
func (c *Client) DeleteItem(ctx context.Context, itemID string) error {
	if err := c.do(ctx, http.MethodDelete, "/items/"+url.PathEscape(itemID), nil, nil); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// AddItemPhoto links a photo to an item.
func (c *Client) AddItemPhoto(ctx context.Context, itemID, photoID string) (*domain.Item, error) {
	var out domain.Item
	path := fmt.Sprintf("/items/%s/photos/%s", url.PathEscape(itemID), url.PathEscape(photoID))
	if err := c.do(ctx, http.MethodPut, path, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to add photo to item: %w", err)
	}
	return &out, nil
}

// RemoveItemPhoto unlinks a photo from an item.
func (c *Client) RemoveItemPhoto(ctx context.Context, itemID, photoID string) (*domain.Item, error) {
	var out domain.Item
	path := fmt.Sprintf("/items/%s/photos/%s", url.PathEscape(itemID), url.PathEscape(photoID))
	if err := c.do(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to remove photo from item: %w", err)
	}
	return &out, nil
}

// CreateRoom persists a room under its claim. Room ids are client-chosen.
func (c *Client) CreateRoom(ctx context.Context, claimID string, room domain.Room) (*domain.Room, error) {
	var out domain.Room
	path := fmt.Sprintf("/claims/%s/rooms/%s", url.PathEscape(claimID), url.PathEscape(room.ID))
	if err := c.do(ctx, http.MethodPost, path, room, &out); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return &out, nil
}

// UpdateRoom persists room attribute changes.
func (c *Client) UpdateRoom(ctx context.Context, claimID string, room domain.Room) (*domain.Room, error) {
	var out domain.Room
	path := fmt.Sprintf("/claims/%s/rooms/%s", url.PathEscape(claimID), url.PathEscape(room.ID))
	if err := c.do(ctx, http.MethodPut, path, room, &out); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	return &out, nil
}

// DeleteRoom removes a room from its claim.
func (c *Client) DeleteRoom(ctx context.Context, claimID, roomID string) error {
	path := fmt.Sprintf("/claims/%s/rooms/%s", url.PathEscape(claimID), url.PathEscape(roomID))
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return nil
}

// UpdateFile persists photo field changes (room assignment of a bare photo).
func (c *Client) UpdateFile(ctx context.Context, photo domain.Photo) (*domain.Photo, error) {
	var out domain.Photo
	if err := c.do(ctx, http.MethodPut, "/files/"+url.PathEscape(photo.ID), photo, &out); err != nil {
		return nil, fmt.Errorf("failed to update file: %w", err)
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call claims api: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close claims api response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Status: resp.StatusCode, Body: string(errBody)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
