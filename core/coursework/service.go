package coursework

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/school"
)

var (
	// errors
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrLessonPlanNotFound = errors.New("lesson plan not found")

	classMissingText = "Class does not exist"
)

type (
	Repository interface {
		CreateQuiz(quiz Quiz) (Quiz, error)
		GetQuizByID(id string) (Quiz, error)
		// QueryQuizzes returns the quizzes of classID, or every quiz if classID is empty.
		QueryQuizzes(classID string) ([]Quiz, error)

		CreateLessonPlan(plan LessonPlan) (LessonPlan, error)
		GetLessonPlanByID(id string) (LessonPlan, error)
		// QueryLessonPlans returns the lesson plans of classID, or every plan if classID is empty.
		QueryLessonPlans(classID string) ([]LessonPlan, error)
	}

	// ClassGetter finds the class coursework is attached to.
	ClassGetter interface {
		GetClass(id string) (school.Class, error)
	}

	Service struct {
		repo    Repository
		classes ClassGetter
	}
)

func NewService(repo Repository, classes ClassGetter) *Service {
	return &Service{repo: repo, classes: classes}
}

func (svc *Service) checkClass(id string) error {
	if _, err := svc.classes.GetClass(id); err != nil {
		if errors.Cause(err) == school.ErrClassNotFound {
			return core.NewValidationError(err, core.FieldError{Field: "classId", Message: classMissingText})
		}
		return errors.Wrap(err, "finding class by ID")
	}
	return nil
}

func (svc *Service) CreateQuiz(nq NewQuiz) (Quiz, error) {
	if err := svc.checkClass(nq.ClassID); err != nil {
		return Quiz{}, err
	}

	var total float64
	if nq.TotalMarks != nil {
		total = *nq.TotalMarks
	} else {
		for _, q := range nq.Questions {
			total += q.Marks
		}
	}
	return svc.repo.CreateQuiz(Quiz{
		ID:          uuid.NewString(),
		Title:       nq.Title,
		Description: nq.Description,
		ClassID:     nq.ClassID,
		Subject:     nq.Subject,
		Duration:    nq.Duration,
		TotalMarks:  total,
		Questions:   nq.Questions,
		StartDate:   nq.StartDate,
		EndDate:     nq.EndDate,
		IsPublished: nq.IsPublished,
		CreatedAt:   time.Now().UTC(),
	})
}

func (svc *Service) GetQuiz(id string) (Quiz, error) {
	return svc.repo.GetQuizByID(id)
}

func (svc *Service) QueryQuizzes(classID string) ([]Quiz, error) {
	return svc.repo.QueryQuizzes(core.CleanString(classID))
}

func (svc *Service) CreateLessonPlan(nlp NewLessonPlan) (LessonPlan, error) {
	if err := svc.checkClass(nlp.ClassID); err != nil {
		return LessonPlan{}, err
	}

	status := nlp.Status
	if status == "" {
		status = StatusDraft
	}
	return svc.repo.CreateLessonPlan(LessonPlan{
		ID:         uuid.NewString(),
		Title:      nlp.Title,
		Subject:    nlp.Subject,
		ClassID:    nlp.ClassID,
		Date:       nlp.Date,
		Duration:   nlp.Duration,
		Objectives: nlp.Objectives,
		Materials:  orEmpty(nlp.Materials),
		Activities: activitiesOrEmpty(nlp.Activities),
		Homework:   nlp.Homework,
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	})
}

func (svc *Service) GetLessonPlan(id string) (LessonPlan, error) {
	return svc.repo.GetLessonPlanByID(id)
}

func (svc *Service) QueryLessonPlans(classID string) ([]LessonPlan, error) {
	return svc.repo.QueryLessonPlans(core.CleanString(classID))
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func activitiesOrEmpty(a []Activity) []Activity {
	if a == nil {
		return []Activity{}
	}
	return a
}
