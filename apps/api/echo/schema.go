package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/masomo/core/catalog"
)

// schemaApi lets client forms mirror the server-side rules.
type schemaApi struct {
	cat *catalog.Catalog
}

func registerSchemaAPI(g *echo.Group, cat *catalog.Catalog) {
	api := schemaApi{cat: cat}

	sg := g.Group("/schemas")
	sg.GET("", api.query)
	sg.GET("/:name", api.retrieve)
}

func (api *schemaApi) query(ctx echo.Context) error {
	return respond(ctx, http.StatusOK, api.cat.Names())
}

func (api *schemaApi) retrieve(ctx echo.Context) error {
	def, ok := api.cat.Definition(ctx.Param("name"))
	if !ok {
		return errHttpNotFound
	}
	return respond(ctx, http.StatusOK, def)
}
