package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/bhasha/internal/exercise"
)

// ErrInvalidPack is returned for packs that fail schema validation, use an
// unsupported version, or contain inconsistent exercises.
var ErrInvalidPack = errors.New("invalid content pack")

// Supported pack versions are >= MinVersion within the same major.
const MinVersion = "v1.0.0"

// Format is the encoding of a pack file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatOf picks the format from a file extension. Anything that is not
// .yaml or .yml is treated as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

//go:embed pack.schema.json
var schemaJSON []byte

//go:embed packs/sample.yaml
var sampleYAML []byte

const schemaURL = "schema://bhasha/pack.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func packSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse pack schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add pack schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// Parse decodes and validates a pack.
func Parse(data []byte, format Format) (*Pack, error) {
	var (
		doc  any
		pack Pack
		err  error
	)
	switch format {
	case FormatYAML:
		if err = yaml.Unmarshal(data, &doc); err == nil {
			err = yaml.Unmarshal(data, &pack)
		}
	default:
		if doc, err = jsonschema.UnmarshalJSON(bytes.NewReader(data)); err == nil {
			err = json.Unmarshal(data, &pack)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidPack, err)
	}

	sch, err := packSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}
	if err := checkVersion(pack.Version); err != nil {
		return nil, err
	}
	return &pack, nil
}

func checkVersion(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: version %q is not semver", ErrInvalidPack, v)
	}
	if semver.Compare(v, MinVersion) < 0 || semver.Major(v) != semver.Major(MinVersion) {
		return fmt.Errorf("%w: unsupported version %s", ErrInvalidPack, v)
	}
	return nil
}

// Catalog builds a catalog from the pack. Skills are registered in pack
// order.
func (p *Pack) Catalog() (*exercise.Catalog, error) {
	cat := exercise.NewCatalog()
	for _, s := range p.Skills {
		name := s.Name
		if name == "" {
			name = s.ID
		}
		cat.AddSkill(exercise.Skill{ID: s.ID, Name: name, Language: s.Language})
		for _, es := range s.Exercises {
			if _, err := cat.Add(es.Exercise(s.ID)); err != nil {
				return nil, fmt.Errorf("%w: skill %s: %v", ErrInvalidPack, s.ID, err)
			}
		}
	}
	return cat, nil
}

// LoadFile reads, validates and converts the pack at path.
func LoadFile(path string) (*exercise.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content pack: %w", err)
	}
	pack, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pack.Catalog()
}

// Sample returns the built-in pack.
func Sample() (*exercise.Catalog, error) {
	pack, err := Parse(sampleYAML, FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("built-in pack: %w", err)
	}
	return pack.Catalog()
}

// Load returns the catalog at path, or the built-in pack when path is empty.
func Load(path string, logger *slog.Logger) (*exercise.Catalog, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var (
		cat *exercise.Catalog
		err error
	)
	if path == "" {
		cat, err = Sample()
		path = "built-in"
	} else {
		cat, err = LoadFile(path)
	}
	if err != nil {
		logger.Error("load content", "path", path, "error", err)
		return nil, err
	}
	logger.Info("content loaded", "path", path, "skills", len(cat.Skills()), "exercises", cat.Len())
	return cat, nil
}
