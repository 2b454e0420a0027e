package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo/core/catalog"
	"github.com/trezcool/masomo/core/coursework"
)

type courseworkApi struct {
	svc *coursework.Service
}

func registerCourseworkAPI(g *echo.Group, gate gateFunc, svc *coursework.Service) {
	api := courseworkApi{svc: svc}

	qg := g.Group("/quizzes")
	qg.GET("", api.queryQuizzes)
	qg.POST("", api.createQuiz, gate(catalog.QuizCreate))
	qg.GET("/:id", retrieve[coursework.Quiz], objectMiddleware(svc.GetQuiz, coursework.ErrQuizNotFound))

	lg := g.Group("/lesson-plans")
	lg.GET("", api.queryLessonPlans)
	lg.POST("", api.createLessonPlan, gate(catalog.LessonPlanCreate))
	lg.GET("/:id", retrieve[coursework.LessonPlan], objectMiddleware(svc.GetLessonPlan, coursework.ErrLessonPlanNotFound))
}

func (api *courseworkApi) createQuiz(ctx echo.Context) error {
	var data coursework.NewQuiz
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuiz")
	}

	quiz, err := api.svc.CreateQuiz(data)
	if err != nil {
		return errors.Wrap(err, "creating quiz")
	}
	return respond(ctx, http.StatusCreated, quiz)
}

func (api *courseworkApi) queryQuizzes(ctx echo.Context) error {
	quizzes, err := api.svc.QueryQuizzes(ctx.QueryParam("classId"))
	if err != nil {
		return errors.Wrap(err, "querying quizzes")
	}
	return respond(ctx, http.StatusOK, quizzes)
}

func (api *courseworkApi) createLessonPlan(ctx echo.Context) error {
	var data coursework.NewLessonPlan
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLessonPlan")
	}

	plan, err := api.svc.CreateLessonPlan(data)
	if err != nil {
		return errors.Wrap(err, "creating lesson plan")
	}
	return respond(ctx, http.StatusCreated, plan)
}

func (api *courseworkApi) queryLessonPlans(ctx echo.Context) error {
	plans, err := api.svc.QueryLessonPlans(ctx.QueryParam("classId"))
	if err != nil {
		return errors.Wrap(err, "querying lesson plans")
	}
	return respond(ctx, http.StatusOK, plans)
}
