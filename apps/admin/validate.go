package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/validation"
)

type validateResult struct {
	Valid   bool                   `json:"valid"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	Errors  []core.FieldError      `json:"errors,omitempty"`
}

// validate prints the outcome of validating the payload at path against the named schema.
// It returns errInvalid when the payload does not pass.
func (cli *commandLine) validate(name, path string) error {
	schema, ok := cli.cat.Get(name)
	if !ok {
		return errors.Errorf("unknown schema %q", name)
	}

	var r io.Reader = cli.in
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrap(err, "opening payload")
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	payload := make(map[string]interface{})
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil && err != io.EOF {
		return errors.Wrap(err, "decoding payload")
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	outcome := validation.Validate(schema, payload)
	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(validateResult{Valid: outcome.Valid(), Payload: outcome.Payload(), Errors: outcome.Errors()}); err != nil {
		return errors.Wrap(err, "encoding outcome")
	}
	if !outcome.Valid() {
		return errInvalid
	}
	return nil
}
