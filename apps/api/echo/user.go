package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo/core/catalog"
	"github.com/trezcool/masomo/core/user"
)

type userApi struct {
	svc *user.Service
}

func registerUserAPI(g *echo.Group, gate gateFunc, svc *user.Service) {
	api := userApi{svc: svc}

	// authentication is mocked: login only checks the credentials
	ag := g.Group("/auth")
	ag.POST("/register", api.register, gate(catalog.UserRegister))
	ag.POST("/login", api.login, gate(catalog.UserLogin))

	ug := g.Group("/users")
	ug.GET("", api.query)

	// detail endpoints
	dg := ug.Group("/:id", objectMiddleware(svc.GetByID, user.ErrNotFound))
	dg.GET("", retrieve[user.User])
	dg.PUT("", api.update, gate(catalog.UserUpdate))
}

// Handlers

func (api *userApi) register(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}

	usr, err := api.svc.Register(data)
	if err != nil {
		return errors.Wrap(err, "registering user")
	}
	return respond(ctx, http.StatusCreated, usr)
}

func (api *userApi) login(ctx echo.Context) error {
	var data user.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}

	usr, err := api.svc.Authenticate(data)
	switch errors.Cause(err) {
	case nil:
		return respond(ctx, http.StatusOK, usr)
	case user.ErrInvalidCredentials:
		return errAuthenticationFailed
	case user.ErrAccountDeactivated:
		return errAccountDeactivated
	default:
		return errors.Wrap(err, "authenticating")
	}
}

func (api *userApi) query(ctx echo.Context) error {
	filter := new(user.QueryFilter)
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, filter); err != nil {
		return respond(ctx, http.StatusOK, []user.User{})
	}

	users, err := api.svc.Query(*filter)
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	return respond(ctx, http.StatusOK, users)
}

func (api *userApi) update(ctx echo.Context) error {
	usr, err := contextObject[user.User](ctx)
	if err != nil {
		return err
	}

	var data user.UpdateUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUser")
	}

	usr, err = api.svc.Update(usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating user")
	}
	return respond(ctx, http.StatusOK, usr)
}
