package store

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
)

//go:embed schema/*.schema.json
var schemaFS embed.FS

const lockRetryDelay = 50 * time.Millisecond

// document ties a schema to the file kind it validates. The schema is
// compiled on first use.
type document struct {
	name string

	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

var (
	recordsDoc = &document{name: "records.schema.json"}
	reposDoc   = &document{name: "repos.schema.json"}
)

func (d *document) compiled() (*jsonschema.Schema, error) {
	d.once.Do(func() {
		raw, err := schemaFS.ReadFile("schema/" + d.name)
		if err != nil {
			d.err = fmt.Errorf("reading schema %s: %w", d.name, err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			d.err = fmt.Errorf("unmarshaling schema %s: %w", d.name, err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(d.name, doc); err != nil {
			d.err = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		d.schema, d.err = c.Compile(d.name)
		if d.err != nil {
			d.err = fmt.Errorf("compiling schema %s: %w", d.name, d.err)
		}
	})
	return d.schema, d.err
}

// validate checks raw YAML against the document schema.
func (d *document) validate(data []byte) error {
	schema, err := d.compiled()
	if err != nil {
		return err
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	// Round-trip through JSON so the validator sees json.Number values.
	jsonData, err := json.Marshal(normalizeYAML(raw))
	if err != nil {
		return fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("reading JSON instance: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("invalid %s: %w", d.name, err)
	}
	return nil
}

// normalizeYAML converts map[any]any values that json.Marshal cannot handle.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeYAML(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = normalizeYAML(item)
		}
		return val
	default:
		return v
	}
}

// readDocument loads path into out. A missing file leaves out untouched and
// reports found=false.
func readDocument(path string, doc *document, out any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := doc.validate(data); err != nil {
		return true, fmt.Errorf("%s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return true, fmt.Errorf("parsing %s: %w", path, err)
	}
	return true, nil
}

// writeDocument marshals v and replaces path atomically.
func writeDocument(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	return writeBytes(path, data)
}

// writeBytes replaces path atomically with data.
func writeBytes(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// lockFile takes an exclusive advisory lock on path+".lock", waiting until
// ctx is done. The returned func releases it.
func lockFile(ctx context.Context, path string) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating directory for %s: %w", path, err)
	}

	fl := flock.New(path + ".lock")
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("locking %s: lock not acquired", path)
	}
	return fl.Unlock, nil
}
