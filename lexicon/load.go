package lexicon

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML table from path and compiles it merged onto the
// default table.
func LoadFile(fileSys afero.Fs, path string) (*Lexicon, error) {
	if fileSys == nil {
		return nil, fmt.Errorf("fileSys is nil")
	}

	data, err := afero.ReadFile(fileSys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file: %w", err)
	}

	var extra Table
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon file: %w", err)
	}

	lex, err := Compile(DefaultTable().Merge(extra))
	if err != nil {
		return nil, fmt.Errorf("invalid lexicon file %s: %w", path, err)
	}

	return lex, nil
}
