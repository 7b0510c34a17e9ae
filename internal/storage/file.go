package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/example/storefront/internal/domain/cart"
)

// FileStorage persists each cart as a single JSON file under a data
// directory, the server-side equivalent of the one localStorage entry a
// browser session keeps. Writes are full re-serializations of the item
// list.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cart data dir: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) Load(ctx context.Context, cartID string) ([]cart.Item, error) {
	data, err := os.ReadFile(f.path(cartID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cart file: %w", err)
	}

	var items []cart.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse cart file: %w", err)
	}
	return items, nil
}

func (f *FileStorage) Save(ctx context.Context, cartID string, items []cart.Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := os.WriteFile(f.path(cartID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart file: %w", err)
	}
	return nil
}

func (f *FileStorage) Delete(ctx context.Context, cartID string) error {
	err := os.Remove(f.path(cartID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete cart file: %w", err)
	}
	return nil
}

func (f *FileStorage) path(cartID string) string {
	// Cart ids are generated internally, but never let one escape the dir.
	return filepath.Join(f.dir, filepath.Base(cartID)+".json")
}
