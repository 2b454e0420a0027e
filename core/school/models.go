package school

import "time"

// School types
const (
	TypePrimary    = "primary"
	TypeSecondary  = "secondary"
	TypeHighSchool = "high_school"
	TypeUniversity = "university"
)

type School struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	AdminEmail string    `json:"adminEmail"`
	AdminName  string    `json:"adminName"`
	Type       string    `json:"type,omitempty"`
	Address    string    `json:"address,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Website    string    `json:"website,omitempty"`
	CreatedAt  time.Time `json:"createdAt"` // UTC
}

// NewSchool is bound from a payload normalized by the school.create schema.
type NewSchool struct {
	SchoolName string `json:"schoolName"`
	Code       string `json:"code"`
	AdminEmail string `json:"adminEmail"`
	AdminName  string `json:"adminName"`
	Type       string `json:"type"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Website    string `json:"website"`
}

type Class struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Code      string     `json:"code"`
	SchoolID  string     `json:"schoolId"`
	TeacherID string     `json:"teacherId,omitempty"`
	Grade     string     `json:"grade,omitempty"`
	Section   string     `json:"section,omitempty"`
	Capacity  int        `json:"capacity,omitempty"`
	Subjects  []string   `json:"subjects"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"` // UTC
}

// NewClass is bound from a payload normalized by the class.create schema.
type NewClass struct {
	Name      string     `json:"name"`
	Code      string     `json:"code"`
	SchoolID  string     `json:"schoolId"`
	TeacherID string     `json:"teacherId"`
	Grade     string     `json:"grade"`
	Section   string     `json:"section"`
	Capacity  int        `json:"capacity"`
	Subjects  []string   `json:"subjects"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}
