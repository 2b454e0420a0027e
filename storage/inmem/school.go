package inmemdb

import (
	"strings"

	"github.com/trezcool/masomo/core/school"
)

type schoolRepository struct {
	schools *table[school.School]
	classes *table[school.Class]
}

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{schools: db.school, classes: db.class}
}

func (repo *schoolRepository) CreateSchool(sch school.School) (school.School, error) {
	err := repo.schools.save(sch.ID, sch, false, func(other school.School) bool {
		return strings.EqualFold(other.Code, sch.Code)
	})
	if err == errRowExists {
		return school.School{}, school.ErrCodeExists
	}
	return sch, err
}

func (repo *schoolRepository) GetSchoolByID(id string) (school.School, error) {
	if sch, ok := repo.schools.get(id); ok {
		return sch, nil
	}
	return school.School{}, school.ErrNotFound
}

func (repo *schoolRepository) QueryAllSchools() ([]school.School, error) {
	return repo.schools.filter(nil), nil
}

func (repo *schoolRepository) CreateClass(cls school.Class) (school.Class, error) {
	err := repo.classes.save(cls.ID, cls, false, func(other school.Class) bool {
		return other.SchoolID == cls.SchoolID && other.Code == cls.Code
	})
	if err == errRowExists {
		return school.Class{}, school.ErrCodeExists
	}
	return cls, err
}

func (repo *schoolRepository) GetClassByID(id string) (school.Class, error) {
	if cls, ok := repo.classes.get(id); ok {
		return cls, nil
	}
	return school.Class{}, school.ErrClassNotFound
}

func (repo *schoolRepository) QueryClasses(schoolID string) ([]school.Class, error) {
	if schoolID == "" {
		return repo.classes.filter(nil), nil
	}
	return repo.classes.filter(func(cls school.Class) bool { return cls.SchoolID == schoolID }), nil
}
