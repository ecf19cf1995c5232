package ui

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/kicadlib/pkg/errors"
)

type yamlRenderer struct {
	w io.Writer
}

func (r *yamlRenderer) RenderResult(result interface{}) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode result")
	}
	return enc.Close()
}

func (r *yamlRenderer) RenderError(err error) error {
	doc := map[string]interface{}{
		"error": err.Error(),
		"code":  string(errors.GetErrorCode(err)),
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		doc["details"] = details
	}
	return r.RenderResult(doc)
}

// Messages become comments so the stream stays valid YAML
func (r *yamlRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintf(r.w, "# %s\n", msg)
	return err
}
