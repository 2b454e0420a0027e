// Package coursework manages the quizzes and lesson plans attached to a class.
package coursework

import "time"

// Question types
const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionTrueFalse      = "true_false"
	QuestionShortAnswer    = "short_answer"
	QuestionEssay          = "essay"
)

// Lesson plan statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

type Question struct {
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
	Marks         float64  `json:"marks"`
}

type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	ClassID     string     `json:"classId"`
	Subject     string     `json:"subject,omitempty"`
	Duration    int        `json:"duration,omitempty"` // minutes
	TotalMarks  float64    `json:"totalMarks"`
	Questions   []Question `json:"questions"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	IsPublished bool       `json:"isPublished"`
	CreatedAt   time.Time  `json:"createdAt"` // UTC
}

// NewQuiz is bound from a payload normalized by the quiz.create schema.
// TotalMarks defaults to the sum of the question marks.
type NewQuiz struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ClassID     string     `json:"classId"`
	Subject     string     `json:"subject"`
	Duration    int        `json:"duration"`
	TotalMarks  *float64   `json:"totalMarks"`
	Questions   []Question `json:"questions"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	IsPublished bool       `json:"isPublished"`
}

type Activity struct {
	Name        string `json:"name"`
	Duration    int    `json:"duration,omitempty"` // minutes
	Description string `json:"description,omitempty"`
}

type LessonPlan struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Subject    string     `json:"subject"`
	ClassID    string     `json:"classId"`
	Date       time.Time  `json:"date"`
	Duration   int        `json:"duration,omitempty"` // minutes
	Objectives []string   `json:"objectives"`
	Materials  []string   `json:"materials"`
	Activities []Activity `json:"activities"`
	Homework   string     `json:"homework,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"` // UTC
}

// NewLessonPlan is bound from a payload normalized by the lessonPlan.create schema.
// Status defaults to draft.
type NewLessonPlan struct {
	Title      string     `json:"title"`
	Subject    string     `json:"subject"`
	ClassID    string     `json:"classId"`
	Date       time.Time  `json:"date"`
	Duration   int        `json:"duration"`
	Objectives []string   `json:"objectives"`
	Materials  []string   `json:"materials"`
	Activities []Activity `json:"activities"`
	Homework   string     `json:"homework"`
	Status     string     `json:"status"`
}
