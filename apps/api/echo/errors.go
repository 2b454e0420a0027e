package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo/core"
)

var (
	errAuthenticationFailed = echo.NewHTTPError(http.StatusBadRequest, "invalid credentials")
	errAccountDeactivated   = echo.NewHTTPError(http.StatusForbidden, "account deactivated")
	errHttpNotFound         = echo.NewHTTPError(http.StatusNotFound, "not found")
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Details []core.FieldError `json:"details,omitempty"`
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		resp := errorResponse{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			if msg, ok := origErr.Message.(string); ok {
				resp.Error = msg
			} else {
				resp.Error = fmt.Sprint(origErr.Message)
			}
		case *core.ValidationError:
			code = http.StatusBadRequest
			resp.Details = origErr.Fields
			if len(origErr.Fields) > 0 || origErr.Err == nil {
				resp.Error = errValidation.Error()
			} else {
				resp.Error = origErr.Error()
			}
		default: // any other error is a server error
			code = http.StatusInternalServerError
			resp.Error = http.StatusText(http.StatusInternalServerError)
			logger.Error(resp.Error, errors.Wrap(err, resp.Error), map[string]interface{}{
				"method": ctx.Request().Method,
				"path":   ctx.Path(),
			})
			if ctx.Echo().Debug {
				resp.Error = err.Error()
			}

			// shutting down...
			if core.IsShutdown(err) && signalShutdown != nil {
				signalShutdown()
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, resp)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
