package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

const (
	dirPerms  = 0o755
	filePerms = 0o644
)

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func readDocument(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %w", ErrIO, path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrNotFound, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrIO, path, err)
	}
	return data, nil
}

// loadJSON decodes the document at path into v.
func loadJSON(path string, v any) error {
	data, err := readDocument(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &CorruptError{Path: path, Raw: string(data), Err: err}
	}
	return nil
}

// loadJSONC is loadJSON for hand-edited documents, tolerating comments and
// trailing commas.
func loadJSONC(path string, v any) error {
	data, err := readDocument(path)
	if err != nil {
		return err
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return &CorruptError{Path: path, Raw: string(data), Err: err}
	}
	if err := json.Unmarshal(std, v); err != nil {
		return &CorruptError{Path: path, Raw: string(data), Err: err}
	}
	return nil
}

// saveJSON pretty-prints v and atomically replaces path with it.
func saveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerms); err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrIO, filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	data = append(data, '\n')
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrIO, path, err)
	}
	// atomic.WriteFile leaves new files with the temp file's 0600.
	if err := os.Chmod(path, filePerms); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", ErrIO, path, err)
	}
	return nil
}
