package roster

import (
	"io/fs"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/sbmops/scorecard/pkg/errors"
	"github.com/sbmops/scorecard/pkg/roster/embedded"
)

// LoadFS builds a roster from YAML files in a filesystem:
// accounts.yaml (required), synonyms.yaml and omissions.yaml (optional).
func LoadFS(fsys fs.FS) (*Roster, error) {
	data, err := fs.ReadFile(fsys, "accounts.yaml")
	if err != nil {
		return nil, errors.WrapIO("read", "accounts.yaml", err)
	}
	var accounts []Account
	if err := yaml.Unmarshal(data, &accounts); err != nil {
		return nil, errors.WrapParse("yaml", "accounts.yaml", err)
	}

	var synonyms []Synonym
	if data, err := fs.ReadFile(fsys, "synonyms.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &synonyms); err != nil {
			return nil, errors.WrapParse("yaml", "synonyms.yaml", err)
		}
	}

	var omissions []string
	if data, err := fs.ReadFile(fsys, "omissions.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &omissions); err != nil {
			return nil, errors.WrapParse("yaml", "omissions.yaml", err)
		}
	}

	return New(accounts, synonyms, omissions)
}

var defaultRoster = sync.OnceValues(func() (*Roster, error) {
	fsys, err := fs.Sub(embedded.FS, "data")
	if err != nil {
		return nil, errors.WrapIO("open", "embedded roster data", err)
	}
	return LoadFS(fsys)
})

// Default returns the embedded account roster. The embedded data is
// validated once; a corrupt build fails on first use.
func Default() (*Roster, error) {
	return defaultRoster()
}
