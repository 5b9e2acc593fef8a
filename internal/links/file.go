package links

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a link table override:
//
//	internal:
//	  Session: ./Session.html
//	external:
//	  Buffer: https://nodejs.org/api/buffer.html
type File struct {
	Internal map[string]string `yaml:"internal" validate:"dive,keys,required,endkeys,required"`
	External map[string]string `yaml:"external" validate:"dive,keys,required,endkeys,required,url"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadFile reads and validates a link table file.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open links file: %w", err)
	}
	defer fh.Close()

	f, err := Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Decode parses a link table from r. Unknown top-level keys are rejected.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to decode links: %w", err)
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("invalid links: %w", err)
	}
	return &f, nil
}
