package store

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"go.yaml.in/yaml/v3"
)

// Kind discriminates the two kinds of installed items.
type Kind string

const (
	KindPackage    Kind = "package"
	KindRepository Kind = "repository"
)

// Record describes one installed item. Version is set only for packages and
// URL only for repositories.
type Record struct {
	Kind    Kind   `yaml:"kind" json:"kind"`
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
	URL     string `yaml:"url,omitempty" json:"url,omitempty"`
	Path    string `yaml:"path" json:"path"`
}

// Records maps an installed item's name to its record.
type Records map[string]Record

// Names returns the record names in sorted order.
func (r Records) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarshalYAML emits the records as a mapping with double-quoted keys, so a
// name such as "<<", "true" or "~" is read back as the same string.
func (r Records) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range r.Names() {
		value := &yaml.Node{}
		if err := value.Encode(r[name]); err != nil {
			return nil, fmt.Errorf("encoding record %q: %w", name, err)
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: name}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

// RecordStore reads and writes the record store file.
type RecordStore struct {
	path string
}

// NewRecordStore returns a store backed by the YAML file at path.
func NewRecordStore(path string) *RecordStore {
	return &RecordStore{path: path}
}

// Path returns the backing file location.
func (s *RecordStore) Path() string { return s.path }

// Load reads every record. A missing file yields an empty mapping.
func (s *RecordStore) Load() (Records, error) {
	records := Records{}
	if _, err := readDocument(s.path, recordsDoc, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = Records{}
	}
	return records, nil
}

// Save rewrites the whole file with records. The encoded document is decoded
// again before it is written; if any name would not read back unchanged the
// file is left alone.
func (s *RecordStore) Save(records Records) error {
	if records == nil {
		records = Records{}
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", s.path, err)
	}

	var back Records
	if err := yaml.Unmarshal(data, &back); err != nil {
		return fmt.Errorf("re-reading encoded records: %w", err)
	}
	if !slices.Equal(back.Names(), records.Names()) {
		return fmt.Errorf("record names do not survive encoding: %q", records.Names())
	}
	return writeBytes(s.path, data)
}

// Lock serializes access to the store across processes. Callers hold it for
// the whole load/mutate/save window.
func (s *RecordStore) Lock(ctx context.Context) (func() error, error) {
	return lockFile(ctx, s.path)
}
