package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const objectKey = "object"

var errObjNotFoundInCtx = errors.New("object not found in echo.Context")

// objectMiddleware loads the object identified by the `id` path param into the context.
// notFound errors from get are answered with a 404.
func objectMiddleware[T any](get func(id string) (T, error), notFound error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			obj, err := get(ctx.Param("id"))
			if err != nil {
				if errors.Cause(err) == notFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding object by ID")
			}
			ctx.Set(objectKey, obj)
			return next(ctx)
		}
	}
}

func contextObject[T any](ctx echo.Context) (T, error) {
	obj, ok := ctx.Get(objectKey).(T)
	if !ok {
		return obj, errors.Wrap(errObjNotFoundInCtx, "retrieving object from context")
	}
	return obj, nil
}

// retrieve answers with the object loaded by objectMiddleware.
func retrieve[T any](ctx echo.Context) error {
	obj, err := contextObject[T](ctx)
	if err != nil {
		return err
	}
	return respond(ctx, http.StatusOK, obj)
}
