// Package tomlfile stores each settings profile as a TOML file.
package tomlfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cristianoliveira/roomprefs/internal/storage/filelock"
	"github.com/cristianoliveira/roomprefs/internal/storage/namespace"
	"github.com/pelletier/go-toml/v2"
)

const (
	fileExt = ".toml"
	lockDir = ".lock"

	dirMode  os.FileMode = 0755
	fileMode os.FileMode = 0600
)

// Backend keeps one <profile>.toml file per namespace in dir. Keys are
// split on "/" into nested tables.
type Backend struct {
	dir string
}

// New returns a Backend rooted at dir, creating it if needed.
func New(dir string) (*Backend, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("toml storage: directory cannot be empty")
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("toml storage: create directory: %w", err)
	}
	return &Backend{dir: dir}, nil
}

// Path returns the file holding profile.
func (b *Backend) Path(profile string) string {
	return filepath.Join(b.dir, profile+fileExt)
}

func (b *Backend) Load(ctx context.Context, profile string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := namespace.Validate(profile); err != nil {
		return nil, err
	}
	tree, err := b.readTree(profile)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string)
	if err := flatten("", tree, out); err != nil {
		return nil, fmt.Errorf("toml storage: %s: %w", b.Path(profile), err)
	}
	return out, nil
}

func (b *Backend) Store(ctx context.Context, profile, key, value string) error {
	return b.update(ctx, profile, func(tree map[string]any) error {
		return insert(tree, splitKey(key), typed(value))
	})
}

func (b *Backend) Delete(ctx context.Context, profile, key string) error {
	return b.update(ctx, profile, func(tree map[string]any) error {
		remove(tree, splitKey(key))
		return nil
	})
}

func (b *Backend) Profiles(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return nil, fmt.Errorf("toml storage: list profiles: %w", err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		profile := strings.TrimSuffix(name, fileExt)
		if namespace.Validate(profile) != nil {
			continue
		}
		names = append(names, profile)
	}
	sort.Strings(names)
	return names, nil
}

func (b *Backend) Close() error { return nil }

// update rewrites the profile file under the directory lock. An empty tree
// removes the file.
func (b *Backend) update(ctx context.Context, profile string, fn func(map[string]any) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := namespace.Validate(profile); err != nil {
		return err
	}
	return filelock.WithLock(filepath.Join(b.dir, lockDir), func() error {
		tree, err := b.readTree(profile)
		if err != nil {
			return err
		}
		if err := fn(tree); err != nil {
			return fmt.Errorf("toml storage: %w", err)
		}
		path := b.Path(profile)
		if len(tree) == 0 {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("toml storage: remove %s: %w", path, err)
			}
			return nil
		}
		data, err := toml.Marshal(tree)
		if err != nil {
			return fmt.Errorf("toml storage: marshal %s: %w", profile, err)
		}
		return writeAtomic(path, data)
	})
}

func (b *Backend) readTree(profile string) (map[string]any, error) {
	path := b.Path(profile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return make(map[string]any), nil
	}
	if err != nil {
		return nil, fmt.Errorf("toml storage: read %s: %w", path, err)
	}
	tree := make(map[string]any)
	if err := toml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("toml storage: parse %s: %w", path, err)
	}
	return tree, nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path))
	if err != nil {
		return fmt.Errorf("toml storage: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("toml storage: write %s: %w", path, err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("toml storage: chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("toml storage: close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("toml storage: replace %s: %w", path, err)
	}
	return nil
}

func splitKey(key string) []string {
	return strings.Split(key, "/")
}

func insert(tree map[string]any, path []string, value any) error {
	for i, part := range path[:len(path)-1] {
		next, ok := tree[part]
		if !ok {
			child := make(map[string]any)
			tree[part] = child
			tree = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("key %s conflicts with value at %s", strings.Join(path, "/"), strings.Join(path[:i+1], "/"))
		}
		tree = child
	}
	leaf := path[len(path)-1]
	if _, isTable := tree[leaf].(map[string]any); isTable {
		return fmt.Errorf("key %s conflicts with a table", strings.Join(path, "/"))
	}
	tree[leaf] = value
	return nil
}

// remove deletes the leaf at path and prunes tables left empty.
func remove(tree map[string]any, path []string) {
	if len(path) == 1 {
		if _, isTable := tree[path[0]].(map[string]any); !isTable {
			delete(tree, path[0])
		}
		return
	}
	child, ok := tree[path[0]].(map[string]any)
	if !ok {
		return
	}
	remove(child, path[1:])
	if len(child) == 0 {
		delete(tree, path[0])
	}
}

func flatten(prefix string, tree map[string]any, out map[string]string) error {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "/" + k
		}
		if child, ok := v.(map[string]any); ok {
			if err := flatten(key, child, out); err != nil {
				return err
			}
			continue
		}
		s, err := untyped(v)
		if err != nil {
			return fmt.Errorf("key %s: %w", key, err)
		}
		out[key] = s
	}
	return nil
}

// typed returns the TOML-native form of value when converting it back
// yields the exact same text, so hand-edited files stay readable.
func typed(value string) any {
	if b, err := strconv.ParseBool(value); err == nil && strconv.FormatBool(b) == value {
		return b
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil && strconv.FormatInt(n, 10) == value {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil && strconv.FormatFloat(f, 'f', -1, 64) == value {
		return f
	}
	return value
}

func untyped(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported toml value %T", v)
	}
}
