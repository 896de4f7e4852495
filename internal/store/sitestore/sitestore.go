package sitestore

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/institutions-in-your-pocket/overview/internal/model"
)

// File-backed site content. YAML, human-editable; JSON files are read with
// the same decoder since JSON is valid YAML. Content is read once at startup.

// DefaultFileName is what `content init` writes when no path is given.
const DefaultFileName = "site.yaml"

var (
	ErrUnsupportedFormat = errors.New("unsupported content format")
	ErrExists            = errors.New("content file already exists")
)

//go:embed site.yaml
var defaultContent []byte

// Default returns the built-in content.
func Default() (*model.Site, error) {
	return decode(defaultContent, "embedded "+DefaultFileName)
}

// Load reads site content from path. An empty path returns Default.
func Load(path string) (*model.Site, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	if err := checkExt(path); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return decode(b, path)
}

// Save writes site as YAML. It refuses to replace an existing file unless
// force is set.
func Save(path string, site *model.Site, force bool) error {
	if strings.TrimSpace(path) == "" {
		path = DefaultFileName
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("%w: %s (save writes yaml)", ErrUnsupportedFormat, path)
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(site); err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func checkExt(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return nil
	}
	return fmt.Errorf("%w: %s (want .yaml, .yml or .json)", ErrUnsupportedFormat, path)
}

func decode(b []byte, name string) (*model.Site, error) {
	var site model.Site
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&site); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if err := site.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &site, nil
}
