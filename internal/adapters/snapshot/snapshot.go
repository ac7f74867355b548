// Package snapshot reads pool snapshot files. A snapshot is a document with a
// single "pools" list of pool specs, in YAML or JSON.
package snapshot

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/hxuan190/swap-router/internal/pool"
)

type File struct {
	Pools []pool.Spec `json:"pools" yaml:"pools"`
}

// LoadFile parses path by extension: .yaml and .yml as YAML, anything else
// as JSON. Every spec is checked by building its pool.
func LoadFile(path string) ([]pool.Spec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read snapshot %s", path)
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &f)
	default:
		err = sonic.Unmarshal(raw, &f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode snapshot %s", path)
	}

	seen := make(map[string]struct{}, len(f.Pools))
	for i, spec := range f.Pools {
		if _, dup := seen[spec.UID]; dup {
			return nil, errors.Errorf("snapshot %s: duplicate pool uid %q", path, spec.UID)
		}
		seen[spec.UID] = struct{}{}
		if _, err := pool.FromSpec(spec); err != nil {
			return nil, errors.Wrapf(err, "snapshot %s: pool %d", path, i)
		}
	}
	return f.Pools, nil
}

// WriteFile stores specs at path in the format LoadFile reads back.
func WriteFile(path string, specs []pool.Spec) error {
	f := File{Pools: specs}
	var (
		raw []byte
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		raw, err = yaml.Marshal(&f)
	default:
		raw, err = sonic.ConfigStd.MarshalIndent(&f, "", "  ")
	}
	if err != nil {
		return errors.Wrapf(err, "encode snapshot %s", path)
	}
	return errors.Wrapf(os.WriteFile(path, raw, 0o644), "write snapshot %s", path)
}
