package echoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/validation"
)

const payloadKey = "payload"

const msgMalformedBody = "malformed request body"

var errValidation = errors.New("Validation failed")

// Gate validates the JSON request body against schema before calling the next handler.
// A valid body is replaced by its normalized encoding, so handlers can Bind it into a typed struct,
// and the normalized map is available through Payload.
// An invalid body short-circuits the chain with a *core.ValidationError.
func Gate(schema *validation.Schema, metrics *Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			payload, err := decodeBody(ctx.Request())
			if err != nil {
				metrics.observe(schema.Name(), outcomeMalformed)
				return echo.NewHTTPError(http.StatusBadRequest, msgMalformedBody).SetInternal(err)
			}

			outcome := validation.Validate(schema, payload)
			if !outcome.Valid() {
				metrics.observe(schema.Name(), outcomeInvalid)
				return core.NewValidationError(errValidation, outcome.Errors()...)
			}
			metrics.observe(schema.Name(), outcomeValid)

			normalized := outcome.Payload()
			body, err := json.Marshal(normalized)
			if err != nil {
				return errors.Wrap(err, "encoding normalized payload")
			}
			req := ctx.Request()
			req.Body = io.NopCloser(bytes.NewReader(body))
			req.ContentLength = int64(len(body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			ctx.Set(payloadKey, normalized)
			return next(ctx)
		}
	}
}

// Payload returns the normalized body stored by Gate.
func Payload(ctx echo.Context) map[string]interface{} {
	payload, _ := ctx.Get(payloadKey).(map[string]interface{})
	return payload
}

// decodeBody reads the request body as a JSON object. An empty body decodes to an empty object.
func decodeBody(req *http.Request) (map[string]interface{}, error) {
	payload := make(map[string]interface{})
	if req.Body == nil {
		return payload, nil
	}
	raw, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading request body")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return payload, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding request body")
	}
	if dec.More() {
		return nil, errors.New("unexpected data after the JSON object")
	}
	if payload == nil { // literal null
		payload = make(map[string]interface{})
	}
	return payload, nil
}
