package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo/core/catalog"
	"github.com/trezcool/masomo/core/school"
)

type schoolApi struct {
	svc *school.Service
}

func registerSchoolAPI(g *echo.Group, gate gateFunc, svc *school.Service) {
	api := schoolApi{svc: svc}

	sg := g.Group("/schools")
	sg.GET("", api.query)
	sg.POST("", api.create, gate(catalog.SchoolCreate))
	sg.GET("/:id", retrieve[school.School], objectMiddleware(svc.GetByID, school.ErrNotFound))

	cg := g.Group("/classes")
	cg.GET("", api.queryClasses)
	cg.POST("", api.createClass, gate(catalog.ClassCreate))
	cg.GET("/:id", retrieve[school.Class], objectMiddleware(svc.GetClass, school.ErrClassNotFound))
}

func (api *schoolApi) create(ctx echo.Context) error {
	var data school.NewSchool
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSchool")
	}

	sch, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating school")
	}
	return respond(ctx, http.StatusCreated, sch)
}

func (api *schoolApi) query(ctx echo.Context) error {
	schools, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying schools")
	}
	return respond(ctx, http.StatusOK, schools)
}

func (api *schoolApi) createClass(ctx echo.Context) error {
	var data school.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}

	cls, err := api.svc.CreateClass(data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return respond(ctx, http.StatusCreated, cls)
}

func (api *schoolApi) queryClasses(ctx echo.Context) error {
	classes, err := api.svc.QueryClasses(ctx.QueryParam("schoolId"))
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	return respond(ctx, http.StatusOK, classes)
}
