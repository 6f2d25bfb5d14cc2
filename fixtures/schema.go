package fixtures

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed dataset.schema.json
var datasetSchema string

var schema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(datasetSchema))
})

// validate checks a raw dataset document against the embedded schema.
func validate(doc []byte) error {
	s, err := schema()
	if err != nil {
		return fmt.Errorf("load dataset schema: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("dataset does not match schema: %s", strings.Join(msgs, "; "))
}
