package school_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo/core"
	. "github.com/trezcool/masomo/core/school"
	"github.com/trezcool/masomo/storage/inmem"
)

func setup(t *testing.T) *Service {
	t.Helper()
	return NewService(inmemdb.NewSchoolRepository(inmemdb.Open()))
}

func newSchool(t *testing.T, svc *Service, code string) School {
	t.Helper()
	sch, err := svc.Create(NewSchool{SchoolName: "St. Mary's", Code: code, AdminEmail: "admin@x.com", AdminName: "Jo"})
	require.NoError(t, err)
	return sch
}

func fieldErrors(t *testing.T, err error) []core.FieldError {
	t.Helper()
	require.True(t, core.IsValidationError(err), "%v", err)
	return err.(*core.ValidationError).Fields
}

func TestService_Create(t *testing.T) {
	svc := setup(t)

	sch := newSchool(t, svc, "STM-01")
	assert.NotEmpty(t, sch.ID)
	assert.Equal(t, "St. Mary's", sch.Name)

	got, err := svc.GetByID(sch.ID)
	require.NoError(t, err)
	assert.Equal(t, sch, got)

	_, err = svc.Create(NewSchool{SchoolName: "Other", Code: "stm-01", AdminEmail: "a@b.cd", AdminName: "Al"})
	assert.Equal(t, []core.FieldError{{Field: "code", Message: "A school with this code already exists"}}, fieldErrors(t, err))

	other := newSchool(t, svc, "STM-02")
	all, err := svc.QueryAll()
	require.NoError(t, err)
	assert.Equal(t, []School{sch, other}, all)

	_, err = svc.GetByID("unknown")
	assert.Equal(t, ErrNotFound, err)
}

func TestService_CreateClass(t *testing.T) {
	svc := setup(t)
	sch := newSchool(t, svc, "STM-01")
	other := newSchool(t, svc, "STM-02")
	start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	cls, err := svc.CreateClass(NewClass{Name: "Grade 5 A", Code: "G5A", SchoolID: sch.ID, Capacity: 30, StartDate: &start})
	require.NoError(t, err)
	assert.Equal(t, []string{}, cls.Subjects)
	assert.Equal(t, &start, cls.StartDate)

	tests := []struct {
		name    string
		nc      NewClass
		wantErr []core.FieldError
	}{
		{
			name:    "unknown school",
			nc:      NewClass{Name: "Grade 5 B", Code: "G5B", SchoolID: "6f1c2a9e-8f5b-4c2d-9d0e-3b7a1c5e2f40"},
			wantErr: []core.FieldError{{Field: "schoolId", Message: "School does not exist"}},
		},
		{
			name:    "duplicate code",
			nc:      NewClass{Name: "Grade 5 A bis", Code: "G5A", SchoolID: sch.ID},
			wantErr: []core.FieldError{{Field: "code", Message: "A class with this code already exists in this school"}},
		},
		{name: "same code in another school", nc: NewClass{Name: "Grade 5 A", Code: "G5A", SchoolID: other.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateClass(tt.nc)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, fieldErrors(t, err))
				return
			}
			assert.NoError(t, err)
		})
	}

	classes, err := svc.QueryClasses(sch.ID)
	require.NoError(t, err)
	assert.Equal(t, []Class{cls}, classes)

	classes, err = svc.QueryClasses("")
	require.NoError(t, err)
	assert.Len(t, classes, 2)

	got, err := svc.GetClass(cls.ID)
	require.NoError(t, err)
	assert.Equal(t, cls, got)

	_, err = svc.GetClass("unknown")
	assert.Equal(t, ErrClassNotFound, err)
}

// concurrently runs fn n times and returns the errors, one per call.
func concurrently(n int, fn func(i int) error) []error {
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = fn(i)
		}(i)
	}
	wg.Wait()
	return errs
}

func checkSingleWinner(t *testing.T, errs []error, wantErr core.FieldError) {
	t.Helper()
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.Equal(t, []core.FieldError{wantErr}, fieldErrors(t, err))
	}
	assert.Equal(t, 1, succeeded)
}

func TestService_Create_concurrentCode(t *testing.T) {
	svc := setup(t)

	errs := concurrently(20, func(i int) error {
		code := "STM-01"
		if i%2 == 0 {
			code = strings.ToLower(code)
		}
		_, err := svc.Create(NewSchool{SchoolName: fmt.Sprintf("School %d", i), Code: code, AdminEmail: "admin@x.com", AdminName: "Jo"})
		return err
	})
	checkSingleWinner(t, errs, core.FieldError{Field: "code", Message: "A school with this code already exists"})

	all, err := svc.QueryAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestService_CreateClass_concurrentCode(t *testing.T) {
	svc := setup(t)
	sch := newSchool(t, svc, "STM-01")

	errs := concurrently(20, func(i int) error {
		_, err := svc.CreateClass(NewClass{Name: fmt.Sprintf("Class %d", i), Code: "G5A", SchoolID: sch.ID})
		return err
	})
	checkSingleWinner(t, errs, core.FieldError{Field: "code", Message: "A class with this code already exists in this school"})

	classes, err := svc.QueryClasses(sch.ID)
	require.NoError(t, err)
	assert.Len(t, classes, 1)
}
