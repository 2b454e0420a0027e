package user_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo/core"
	. "github.com/trezcool/masomo/core/user"
	"github.com/trezcool/masomo/storage/inmem"
)

const pwd = "Pa$$w0rd!"

func setup(t *testing.T) *Service {
	t.Helper()
	return NewService(inmemdb.NewUserRepository(inmemdb.Open()))
}

func register(t *testing.T, svc *Service, name, email, role string) User {
	t.Helper()
	usr, err := svc.Register(NewUser{Name: name, Email: email, Password: pwd, Role: role})
	require.NoError(t, err)
	return usr
}

func fieldErrors(t *testing.T, err error) []core.FieldError {
	t.Helper()
	require.True(t, core.IsValidationError(err), "%v", err)
	return err.(*core.ValidationError).Fields
}

func TestService_Register(t *testing.T) {
	svc := setup(t)

	usr := register(t, svc, "Jo Kabila", "jo@masomo.cd", RoleTeacher)
	assert.NotEmpty(t, usr.ID)
	assert.True(t, usr.IsActive)
	assert.NotEqual(t, pwd, string(usr.PasswordHash))
	assert.NoError(t, usr.CheckPassword(pwd))
	assert.False(t, usr.IsAdmin())

	_, err := svc.Register(NewUser{Name: "Jo", Email: "jo@masomo.cd", Password: pwd, Role: RoleStudent})
	assert.Equal(t, []core.FieldError{{Field: "email", Message: "A user with this email already exists"}}, fieldErrors(t, err))

	_, err = svc.Register(NewUser{Name: "Jonathan", Email: "jonathan@masomo.cd", Password: "Jonathan1!", Role: RoleStudent})
	assert.Equal(t, []core.FieldError{{Field: "password", Message: "Password cannot be similar to user attributes"}}, fieldErrors(t, err))
}

func TestService_Authenticate(t *testing.T) {
	svc := setup(t)
	usr := register(t, svc, "Jo Kabila", "jo@masomo.cd", RoleTeacher)
	naughty := register(t, svc, "N Dog", "ndog@masomo.cd", RoleStudent)
	_, err := svc.Update(naughty.ID, UpdateUser{IsActive: boolPtr(false)})
	require.NoError(t, err)

	tests := []struct {
		name    string
		creds   Credentials
		wantErr error
	}{
		{name: "valid", creds: Credentials{Email: " JO@masomo.cd", Password: pwd}},
		{name: "unknown email", creds: Credentials{Email: "who@masomo.cd", Password: pwd}, wantErr: ErrInvalidCredentials},
		{name: "wrong password", creds: Credentials{Email: "jo@masomo.cd", Password: "nope"}, wantErr: ErrInvalidCredentials},
		{name: "deactivated", creds: Credentials{Email: "ndog@masomo.cd", Password: pwd}, wantErr: ErrAccountDeactivated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Authenticate(tt.creds)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, usr.ID, got.ID)
		})
	}
}

func TestService_Update(t *testing.T) {
	svc := setup(t)
	usr := register(t, svc, "Jo Kabila", "jo@masomo.cd", RoleTeacher)
	register(t, svc, "King", "king@masomo.cd", RoleParent)

	name, phone, newPwd := "Joseph Kabila", "+243810000000", "N3w-Secret"
	got, err := svc.Update(usr.ID, UpdateUser{Name: &name, Phone: &phone, Password: &newPwd})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, phone, got.Phone)
	assert.Equal(t, "jo@masomo.cd", got.Email)
	assert.NoError(t, got.CheckPassword(newPwd))
	assert.False(t, got.UpdatedAt.Before(usr.UpdatedAt))

	same := "jo@masomo.cd"
	_, err = svc.Update(usr.ID, UpdateUser{Email: &same})
	assert.NoError(t, err)

	taken := "king@masomo.cd"
	_, err = svc.Update(usr.ID, UpdateUser{Email: &taken})
	assert.Equal(t, []core.FieldError{{Field: "email", Message: "A user with this email already exists"}}, fieldErrors(t, err))

	_, err = svc.Update("unknown", UpdateUser{Name: &name})
	assert.Equal(t, ErrNotFound, err)
}

func TestService_Query(t *testing.T) {
	svc := setup(t)
	teacher := register(t, svc, "Teacher", "teacher@masomo.cd", RoleTeacher)
	student := register(t, svc, "Hero", "hero@masomo.cd", RoleStudent)
	admin := register(t, svc, "Admin", "admin@masomo.cd", RoleSchoolAdmin)
	_, err := svc.Update(student.ID, UpdateUser{IsActive: boolPtr(false)})
	require.NoError(t, err)

	ids := func(users []User) []string {
		res := make([]string, 0, len(users))
		for _, u := range users {
			res = append(res, u.ID)
		}
		return res
	}

	tests := []struct {
		name   string
		filter QueryFilter
		want   []string
	}{
		{name: "all", want: []string{teacher.ID, student.ID, admin.ID}},
		{name: "role", filter: QueryFilter{Role: " Teacher "}, want: []string{teacher.ID}},
		{name: "search", filter: QueryFilter{Search: "HER"}, want: []string{teacher.ID, student.ID}},
		{name: "is active", filter: QueryFilter{IsActive: boolPtr(true)}, want: []string{teacher.ID, admin.ID}},
		{name: "school", filter: QueryFilter{SchoolID: "nope"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := svc.Query(tt.filter)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, ids(users))
		})
	}

	usr, err := svc.GetByID(admin.ID)
	require.NoError(t, err)
	assert.True(t, usr.IsAdmin())
}

func boolPtr(b bool) *bool { return &b }

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

func checkSingleWinner(t *testing.T, errs []error) {
	t.Helper()
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.Equal(t, []core.FieldError{{Field: "email", Message: "A user with this email already exists"}}, fieldErrors(t, err))
	}
	assert.Equal(t, 1, succeeded)
}

func TestService_Register_concurrentEmail(t *testing.T) {
	svc := setup(t)

	errs := concurrently(20, func(i int) error {
		_, err := svc.Register(NewUser{Name: fmt.Sprintf("User %d", i), Email: "dup@masomo.cd", Password: pwd, Role: RoleStudent})
		return err
	})
	checkSingleWinner(t, errs)

	users, err := svc.Query(QueryFilter{})
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestService_Update_concurrentEmail(t *testing.T) {
	svc := setup(t)
	users := make([]User, 10)
	for i := range users {
		users[i] = register(t, svc, fmt.Sprintf("User %d", i), fmt.Sprintf("user%d@masomo.cd", i), RoleStudent)
	}

	email := "taken@masomo.cd"
	errs := concurrently(len(users), func(i int) error {
		_, err := svc.Update(users[i].ID, UpdateUser{Email: &email})
		return err
	})
	checkSingleWinner(t, errs)

	matches, err := svc.Query(QueryFilter{Search: "taken@"})
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
