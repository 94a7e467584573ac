package fsops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// htmlExtensions are the file suffixes picked up when scanning a directory
var htmlExtensions = []string{".html", ".htm"}

// CheckWritable checks if a path is writable
func CheckWritable(fs afero.Fs, path string) error {
	testFile := filepath.Join(path, ".locrank-write-test")
	f, err := fs.Create(testFile)
	if err != nil {
		return fmt.Errorf("path not writable: %w", err)
	}
	f.Close()
	_ = fs.Remove(testFile)
	return nil
}

// EnsureDir ensures a directory exists with the given permissions
func EnsureDir(fs afero.Fs, path string, perm os.FileMode) error {
	if err := fs.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("ensure directory: %w", err)
	}
	return nil
}

// Exists checks if a path exists
func Exists(fs afero.Fs, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

// IsDir checks if a path is a directory
func IsDir(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ReadHTML reads a markup file, refusing files larger than maxBytes (0 disables the limit)
func ReadHTML(fs afero.Fs, path string, maxBytes int64) (string, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat input: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("input is a directory: %s", path)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return "", fmt.Errorf("input too large: %d bytes (max %d)", info.Size(), maxBytes)
	}

	f, err := fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return ReadHTMLFrom(f, maxBytes)
}

// ReadHTMLFrom reads markup from r, refusing more than maxBytes (0 disables the limit)
func ReadHTMLFrom(r io.Reader, maxBytes int64) (string, error) {
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	if maxBytes > 0 && int64(len(content)) > maxBytes {
		return "", fmt.Errorf("input too large: more than %d bytes", maxBytes)
	}

	return string(content), nil
}

// IsHTMLFile reports whether the path has an html extension
func IsHTMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range htmlExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

// FindHTMLFiles walks dir and returns every html file below it, sorted
func FindHTMLFiles(fs afero.Fs, dir string) ([]string, error) {
	if !IsDir(fs, dir) {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	var files []string
	err := afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != dir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsHTMLFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	sort.Strings(files)
	return files, nil
}
