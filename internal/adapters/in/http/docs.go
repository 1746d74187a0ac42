package http

import (
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

var (
	docsOnce sync.Once
	docsErr  error
)

// openAPIDoc serves the embedded OpenAPI document to the swagger UI.
type openAPIDoc struct {
	json string
}

func (d openAPIDoc) ReadDoc() string {
	return d.json
}

// registerDocs publishes doc under swag's default instance name. swag keeps a process
// wide registry, so only the first call registers.
func registerDocs(doc *openapi3.T) error {
	docsOnce.Do(func() {
		raw, err := doc.MarshalJSON()
		if err != nil {
			docsErr = fmt.Errorf("marshal openapi document: %w", err)
			return
		}
		swag.Register(swag.Name, openAPIDoc{json: string(raw)})
	})
	return docsErr
}
