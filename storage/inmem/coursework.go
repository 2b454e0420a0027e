package inmemdb

import "github.com/trezcool/masomo/core/coursework"

type courseworkRepository struct {
	quizzes *table[coursework.Quiz]
	plans   *table[coursework.LessonPlan]
}

func NewCourseworkRepository(db *DB) coursework.Repository {
	return &courseworkRepository{quizzes: db.quiz, plans: db.lessonPlan}
}

func (repo *courseworkRepository) CreateQuiz(quiz coursework.Quiz) (coursework.Quiz, error) {
	return repo.quizzes.insert(quiz.ID, quiz), nil
}

func (repo *courseworkRepository) GetQuizByID(id string) (coursework.Quiz, error) {
	if quiz, ok := repo.quizzes.get(id); ok {
		return quiz, nil
	}
	return coursework.Quiz{}, coursework.ErrQuizNotFound
}

func (repo *courseworkRepository) QueryQuizzes(classID string) ([]coursework.Quiz, error) {
	if classID == "" {
		return repo.quizzes.filter(nil), nil
	}
	return repo.quizzes.filter(func(quiz coursework.Quiz) bool { return quiz.ClassID == classID }), nil
}

func (repo *courseworkRepository) CreateLessonPlan(plan coursework.LessonPlan) (coursework.LessonPlan, error) {
	return repo.plans.insert(plan.ID, plan), nil
}

func (repo *courseworkRepository) GetLessonPlanByID(id string) (coursework.LessonPlan, error) {
	if plan, ok := repo.plans.get(id); ok {
		return plan, nil
	}
	return coursework.LessonPlan{}, coursework.ErrLessonPlanNotFound
}

func (repo *courseworkRepository) QueryLessonPlans(classID string) ([]coursework.LessonPlan, error) {
	if classID == "" {
		return repo.plans.filter(nil), nil
	}
	return repo.plans.filter(func(plan coursework.LessonPlan) bool { return plan.ClassID == classID }), nil
}
