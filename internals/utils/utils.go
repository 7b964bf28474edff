package utils

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// ReadJSONFile decodes the cached json document at filename into v.
// Decoding errors name the file so a corrupt cache entry can be found
func ReadJSONFile(filename string, v interface{}) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(v); err != nil {
		return errors.Wrapf(err, "decoding %s", filename)
	}
	return nil
}
