package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go_4_vocab_review/internal/model"
)

// FileBackend は項目をJSON配列 (1項目1レコード) としてファイルに保存します。
// 未知のフィールドは無視し、欠落したフィールドは既定値で補います。
type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Load(ctx context.Context) ([]model.LearnedItem, error) {
	f, err := os.Open(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []model.LearnedItem{}, nil
		}
		return nil, fmt.Errorf("FileBackend.Load: %w", err)
	}
	defer f.Close()

	var records []itemRecord
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("FileBackend.Load: decode %s: %w", b.path, err)
	}
	return recordsToItems(ctx, records, time.Now().UTC()), nil
}

// Save は同じディレクトリの一時ファイルに書いてから rename で置き換えます。
func (b *FileBackend) Save(ctx context.Context, items []model.LearnedItem) (err error) {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("FileBackend.Save: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("FileBackend.Save: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err = enc.Encode(itemsToRecords(items)); err != nil {
		return fmt.Errorf("FileBackend.Save: encode: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("FileBackend.Save: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("FileBackend.Save: %w", err)
	}
	if err = os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("FileBackend.Save: %w", err)
	}
	return nil
}

func (b *FileBackend) Close() error {
	return nil
}
