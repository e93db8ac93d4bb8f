package loader

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"

	"github.com/raphi011/shim/internal/hooks"
	"github.com/raphi011/shim/internal/log"
	"github.com/raphi011/shim/internal/shim"
)

// shimFile is the mapping form of a shim file.
type shimFile struct {
	Shims []*shim.Shim `yaml:"shims"`
}

// Load reads the shim files at paths, in order, into a registry.
func Load(ctx context.Context, paths []string) (*shim.Registry, error) {
	l := log.FromContext(ctx)

	var entries []shim.Entry
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			l.Warn("unable to open %s: %v", path, err)
			continue
		}
		l.Debug("reading shims", "file", path)

		shims, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		src := shim.Source{Path: path, Fingerprint: Fingerprint(data)}
		for _, s := range shims {
			entries = append(entries, shim.Entry{Shim: s, Source: src})
		}
	}
	return shim.NewRegistry(entries...), nil
}

// Parse decodes and validates the shims of one file. Unknown keys are
// rejected so that typos like "overide" do not silently drop hooks.
func Parse(data []byte) ([]*shim.Shim, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse shim file: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	var shims []*shim.Shim
	switch doc.Content[0].Kind {
	case yaml.SequenceNode:
		if err := decodeStrict(data, &shims); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		var f shimFile
		if err := decodeStrict(data, &f); err != nil {
			return nil, err
		}
		shims = f.Shims
	default:
		return nil, errors.New("failed to parse shim file: expected a list of shims or a \"shims\" key")
	}

	for i, s := range shims {
		if err := validate(s); err != nil {
			return nil, fmt.Errorf("shims[%d]: %w", i, err)
		}
	}
	return shims, nil
}

func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse shim file: %w", err)
	}
	return nil
}

func validate(s *shim.Shim) error {
	if s == nil {
		return errors.New("empty shim entry")
	}
	if strings.TrimSpace(s.Program()) == "" {
		return errors.New("program is required")
	}
	if strings.ContainsRune(s.Program(), filepath.Separator) {
		return fmt.Errorf("program %q must be a base name, not a path", s.Program())
	}
	if err := hooks.ValidateEnv(s.Env()); err != nil {
		return fmt.Errorf("%s: env: %w", s.Program(), err)
	}
	for _, phase := range shim.Phases {
		for i, h := range s.Hooks(phase) {
			if strings.TrimSpace(h.Run) == "" {
				return fmt.Errorf("%s: %s[%d]: run is required", s.Program(), phase, i)
			}
			if err := hooks.ValidateEnv(h.Env); err != nil {
				return fmt.Errorf("%s: %s[%d]: env: %w", s.Program(), phase, i, err)
			}
		}
	}
	return nil
}

// Fingerprint returns the hex BLAKE3 digest of a shim file's contents.
func Fingerprint(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Discover returns the *.yaml and *.yml files in dir, sorted by name.
// A missing directory yields no files.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read shim dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Files returns the files to load: the discovered files of dir followed by
// the explicit files, so that explicit files win. Explicit files must exist.
func Files(dir string, explicit []string) ([]string, error) {
	files, err := Discover(dir)
	if err != nil {
		return nil, err
	}
	for _, f := range explicit {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", f, err)
		}
		if _, err := os.Stat(abs); err != nil {
			return nil, fmt.Errorf("file not found: %s", f)
		}
		files = append(files, abs)
	}
	return files, nil
}
