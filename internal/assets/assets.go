// Package assets loads card face images named by an HCL manifest.
//
// A manifest lists one image block per asset:
//
//	image "ace_of_spades" {
//	  path = "cards/ace_of_spades.txt"
//	}
//
// Paths are relative to the manifest. Images that fail to load are
// logged and left out; lookups for them return ErrMissingAsset so the
// renderer can fall back to a blank visual.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"golang.org/x/sync/errgroup"
)

// ErrMissingAsset is returned for a name with no loaded image
var ErrMissingAsset = errors.New("missing asset")

// maxConcurrentReads bounds the loader's parallel file reads
const maxConcurrentReads = 8

// Manifest is the decoded asset manifest
type Manifest struct {
	Images []ImageSpec `hcl:"image,block"`
}

// ImageSpec names one image and where to find it
type ImageSpec struct {
	Name string `hcl:"name,label"`
	Path string `hcl:"path"`
}

// ParseManifest decodes manifest source. filename is used in diagnostics.
func ParseManifest(src []byte, filename string) (*Manifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest: %s", diags.Error())
	}

	var m Manifest
	if diags := gohcl.DecodeBody(file.Body, nil, &m); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest: %s", diags.Error())
	}

	seen := make(map[string]bool, len(m.Images))
	for _, img := range m.Images {
		if seen[img.Name] {
			return nil, fmt.Errorf("duplicate image %q in manifest", img.Name)
		}
		seen[img.Name] = true
	}
	return &m, nil
}

// Store holds loaded images by name. It is read-only after loading and
// safe for concurrent use.
type Store struct {
	images map[string][]byte
}

// NewStore wraps already loaded images
func NewStore(images map[string][]byte) *Store {
	if images == nil {
		images = make(map[string][]byte)
	}
	return &Store{images: images}
}

// Load reads the manifest at manifestPath from disk and every image it
// names. A missing manifest is not an error: the store comes back empty
// and every visual will be blank.
func Load(ctx context.Context, manifestPath string, logger *log.Logger) (*Store, error) {
	if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
		logger.WithPrefix("assets").Warn("Asset manifest not found, cards will be blank", "manifest", manifestPath)
		return NewStore(nil), nil
	}
	dir, name := filepath.Split(manifestPath)
	if dir == "" {
		dir = "."
	}
	return LoadFS(ctx, os.DirFS(dir), name, logger)
}

// LoadFS loads the manifest and its images from fsys. Only an unreadable
// or invalid manifest fails; individual images are logged and skipped.
func LoadFS(ctx context.Context, fsys fs.FS, manifest string, logger *log.Logger) (*Store, error) {
	logger = logger.WithPrefix("assets")

	src, err := fs.ReadFile(fsys, manifest)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := ParseManifest(src, manifest)
	if err != nil {
		return nil, err
	}

	base := path.Dir(manifest)
	var mu sync.Mutex
	images := make(map[string][]byte, len(m.Images))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for _, img := range m.Images {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(fsys, path.Join(base, img.Path))
			if err != nil {
				logger.Warn("Failed to load image", "name", img.Name, "path", img.Path, "error", err)
				return nil
			}
			mu.Lock()
			images[img.Name] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("Assets loaded", "loaded", len(images), "listed", len(m.Images))
	return NewStore(images), nil
}

// Face returns the image registered under name
func (s *Store) Face(name string) ([]byte, error) {
	data, ok := s.images[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrMissingAsset)
	}
	return data, nil
}

// Len returns the number of loaded images
func (s *Store) Len() int {
	return len(s.images)
}

// Names returns the loaded image names in sorted order
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.images))
	for name := range s.images {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
