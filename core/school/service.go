package school

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo/core"
)

var (
	// errors
	ErrNotFound      = errors.New("school not found")
	ErrClassNotFound = errors.New("class not found")
	ErrCodeExists    = errors.New("code already in use")

	schoolCodeExistsText = "A school with this code already exists"
	classCodeExistsText  = "A class with this code already exists in this school"
	schoolMissingText    = "School does not exist"
)

type (
	Repository interface {
		// CreateSchool returns ErrCodeExists if another school owns sch.Code, regardless of case.
		CreateSchool(sch School) (School, error)
		GetSchoolByID(id string) (School, error)
		QueryAllSchools() ([]School, error)

		// CreateClass returns ErrCodeExists if the school of cls already has a class with cls.Code.
		CreateClass(cls Class) (Class, error)
		GetClassByID(id string) (Class, error)
		// QueryClasses returns the classes of schoolID, or every class if schoolID is empty.
		QueryClasses(schoolID string) ([]Class, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a school. Codes are unique regardless of case.
func (svc *Service) Create(ns NewSchool) (School, error) {
	sch, err := svc.repo.CreateSchool(School{
		ID:         uuid.NewString(),
		Name:       ns.SchoolName,
		Code:       ns.Code,
		AdminEmail: ns.AdminEmail,
		AdminName:  ns.AdminName,
		Type:       ns.Type,
		Address:    ns.Address,
		Phone:      ns.Phone,
		Website:    ns.Website,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return School{}, codeError(err, schoolCodeExistsText, "creating school")
	}
	return sch, nil
}

// codeError reports ErrCodeExists as a field error on code and wraps anything else.
func codeError(err error, text, msg string) error {
	if errors.Cause(err) == ErrCodeExists {
		return core.NewValidationError(ErrCodeExists, core.FieldError{Field: "code", Message: text})
	}
	return errors.Wrap(err, msg)
}

func (svc *Service) GetByID(id string) (School, error) {
	return svc.repo.GetSchoolByID(id)
}

func (svc *Service) QueryAll() ([]School, error) {
	return svc.repo.QueryAllSchools()
}

// CreateClass adds a class to an existing school. Class codes are unique per school.
func (svc *Service) CreateClass(nc NewClass) (Class, error) {
	if _, err := svc.repo.GetSchoolByID(nc.SchoolID); err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Class{}, core.NewValidationError(err, core.FieldError{Field: "schoolId", Message: schoolMissingText})
		}
		return Class{}, errors.Wrap(err, "finding school by ID")
	}

	subjects := nc.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	cls, err := svc.repo.CreateClass(Class{
		ID:        uuid.NewString(),
		Name:      nc.Name,
		Code:      nc.Code,
		SchoolID:  nc.SchoolID,
		TeacherID: nc.TeacherID,
		Grade:     nc.Grade,
		Section:   nc.Section,
		Capacity:  nc.Capacity,
		Subjects:  subjects,
		StartDate: nc.StartDate,
		EndDate:   nc.EndDate,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return Class{}, codeError(err, classCodeExistsText, "creating class")
	}
	return cls, nil
}

func (svc *Service) GetClass(id string) (Class, error) {
	return svc.repo.GetClassByID(id)
}

func (svc *Service) QueryClasses(schoolID string) ([]Class, error) {
	return svc.repo.QueryClasses(core.CleanString(schoolID))
}
