package models

import (
	"fmt"
	"os"
	"path/filepath"
)

// File is a local file staged for a multipart upload.
type File struct {
	Name string
	Data []byte
}

// Empty reports whether no file was selected. Safe on nil.
func (f *File) Empty() bool {
	return f == nil || len(f.Data) == 0
}

// ReadFile stages the file at path. The multipart part name is the base name.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &File{Name: filepath.Base(path), Data: data}, nil
}
