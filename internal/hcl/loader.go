package hcl

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/gridwalk/internal/config"
	"github.com/specialistvlad/gridwalk/internal/ctxlog"
	"github.com/specialistvlad/gridwalk/internal/fsutil"
)

var ErrNoPuzzleFiles = errors.New("no .hcl puzzle files found")

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL puzzle loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load discovers every .hcl file below paths and merges their puzzles into
// one model. Puzzle names must be unique per kind across all files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, ErrNoPuzzleFiles
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	model := &config.Model{}
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		if err := l.decodeInto(model, hclFile, file); err != nil {
			return nil, err
		}
	}
	if err := checkUnique(model); err != nil {
		return nil, err
	}

	logger.Debug("HCL loading complete.", "scans", len(model.Scans), "walks", len(model.Walks))
	return model, nil
}

// Parse decodes a single in-memory puzzle file. Relative paths resolve
// against the directory of filename.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string) (*config.Model, error) {
	hclFile, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	model := &config.Model{}
	if err := l.decodeInto(model, hclFile, filename); err != nil {
		return nil, err
	}
	if err := checkUnique(model); err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Parsed HCL source.", "file", filename, "scans", len(model.Scans), "walks", len(model.Walks))
	return model, nil
}

func (l *Loader) decodeInto(model *config.Model, hclFile *hcl.File, filename string) error {
	dir, err := filepath.Abs(filepath.Dir(filename))
	if err != nil {
		return fmt.Errorf("failed to resolve directory of %s: %w", filename, err)
	}

	var root fileRoot
	diags := gohcl.DecodeBody(hclFile.Body, newEvalContext(dir), &root)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	for _, b := range root.Scans {
		s, err := l.translateScan(dir, b)
		if err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
		model.Scans = append(model.Scans, s)
	}
	for _, b := range root.Walks {
		w, err := l.translateWalk(dir, b)
		if err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
		model.Walks = append(model.Walks, w)
	}
	return nil
}

func checkUnique(model *config.Model) error {
	scans := make(map[string]struct{}, len(model.Scans))
	for _, s := range model.Scans {
		if _, dup := scans[s.Name]; dup {
			return fmt.Errorf("duplicate scan %q", s.Name)
		}
		scans[s.Name] = struct{}{}
	}
	walks := make(map[string]struct{}, len(model.Walks))
	for _, w := range model.Walks {
		if _, dup := walks[w.Name]; dup {
			return fmt.Errorf("duplicate walk %q", w.Name)
		}
		walks[w.Name] = struct{}{}
	}
	return nil
}
