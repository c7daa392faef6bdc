package api

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi/contact.yaml
var contractFS embed.FS

var (
	contractOnce sync.Once
	contractDoc  *openapi3.T
	contractErr  error
)

// Contract returns the parsed, validated API description embedded in
// the binary.
func Contract(ctx context.Context) (*openapi3.T, error) {
	contractOnce.Do(func() {
		raw, err := contractFS.ReadFile("openapi/contact.yaml")
		if err != nil {
			contractErr = fmt.Errorf("api: read contract: %w", err)
			return
		}

		loader := &openapi3.Loader{Context: ctx}
		doc, err := loader.LoadFromData(raw)
		if err != nil {
			contractErr = fmt.Errorf("api: load contract: %w", err)
			return
		}
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			contractErr = fmt.Errorf("api: validate contract: %w", err)
			return
		}
		contractDoc = doc
	})
	return contractDoc, contractErr
}

// ContractHandler serves the contract as JSON.
func ContractHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		doc, err := Contract(r.Context())
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		payload, err := doc.MarshalJSON()
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(payload)
	})
}
