package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/user"
	"github.com/trezcool/masomo/tests"
)

func Test_userApi_register(t *testing.T) {
	app, svcs := setup(t)
	testutil.CreateUser(t, svcs.user, "King", "king@masomo.cd", user.RoleParent, true)

	tests := []httpTest{
		{
			name: "empty payload", body: []byte(`{}`), wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, validationErr(
				core.FieldError{Field: "name", Message: "Name is required"},
				core.FieldError{Field: "email", Message: "Email is required"},
				core.FieldError{Field: "password", Message: "Password is required"},
				core.FieldError{Field: "role", Message: "Role is required"},
			)),
		},
		{
			name: "malformed", body: []byte(`{"name"`), wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{Error: "malformed request body"}),
		},
		{
			name:     "weak password",
			body:     []byte(`{"name":"Jo","email":"jo@masomo.cd","password":"abc","role":"teacher"}`),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, validationErr(
				core.FieldError{Field: "password", Message: "Password must be at least 8 characters long"},
				core.FieldError{Field: "password", Message: "Password must contain at least 1 uppercase character, 1 lowercase character, 1 digit and 1 special character"},
			)),
		},
		{
			name:     "email taken",
			body:     []byte(`{"name":"Jo","email":" KING@masomo.cd","password":"Pa$$w0rd!","role":"teacher"}`),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, validationErr(core.FieldError{Field: "email", Message: "A user with this email already exists"})),
		},
		{
			name:     "valid",
			body:     []byte(`{"name":" Jo Kabila ","email":"Jo@Masomo.cd","password":"Pa$$w0rd!","role":"teacher","isAdmin":true}`),
			wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.method, tt.path = http.MethodPost, "/api/auth/register"
			rec := serve(app, tt)
			checkCodeAndData(t, tt, rec)
		})
	}

	usr, err := svcs.user.Authenticate(user.Credentials{Email: "jo@masomo.cd", Password: testutil.DefaultPassword})
	require.NoError(t, err)
	assert.Equal(t, "Jo Kabila", usr.Name)
	assert.Equal(t, user.RoleTeacher, usr.Role)
}

func Test_userApi_login(t *testing.T) {
	app, svcs := setup(t)
	usr := testutil.CreateUser(t, svcs.user, "Jo Kabila", "jo@masomo.cd", user.RoleTeacher, true)
	testutil.CreateUser(t, svcs.user, "N Dog", "ndog@masomo.cd", user.RoleStudent, false)

	tests := []httpTest{
		{
			name: "empty payload", body: []byte(`{}`), wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, validationErr(
				core.FieldError{Field: "email", Message: "Email is required"},
				core.FieldError{Field: "password", Message: "Password is required"},
			)),
		},
		{
			name: "invalid email", body: []byte(`{"email":"not-an-email","password":"abc123"}`), wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, validationErr(core.FieldError{Field: "email", Message: "Please provide a valid email address"})),
		},
		{
			name: "wrong password", body: []byte(`{"email":"jo@masomo.cd","password":"abc123"}`), wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{Error: "invalid credentials"}),
		},
		{
			name: "deactivated", body: []byte(`{"email":"ndog@masomo.cd","password":"Pa$$w0rd!"}`), wantCode: http.StatusForbidden,
			wantData: marshallObj(t, httpErr{Error: "account deactivated"}),
		},
		{
			name: "valid", body: []byte(`{"email":"JO@masomo.cd","password":"Pa$$w0rd!","remember":true}`), wantCode: http.StatusOK,
			wantData: marshallData(t, usr),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.method, tt.path = http.MethodPost, "/api/auth/login"
			rec := serve(app, tt)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_query(t *testing.T) {
	app, svcs := setup(t)
	teacher := testutil.CreateUser(t, svcs.user, "Teacher", "teacher@masomo.cd", user.RoleTeacher, true)
	student := testutil.CreateUser(t, svcs.user, "Hero", "hero@masomo.cd", user.RoleStudent, true)
	naughty := testutil.CreateUser(t, svcs.user, "N Dog", "ndog@masomo.cd", user.RoleStudent, false)

	tests := []httpTest{
		{name: "all", path: "/api/users", wantData: marshallData(t, []user.User{teacher, student, naughty})},
		{name: "role", path: "/api/users?role=student", wantData: marshallData(t, []user.User{student, naughty})},
		{name: "search", path: "/api/users?search=HER", wantData: marshallData(t, []user.User{teacher, student})},
		{name: "unknown role", path: "/api/users?role=lol", wantData: marshallData(t, []user.User{})},
		{name: "trailing slash", path: "/api/users/?role=teacher", wantData: marshallData(t, []user.User{teacher})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.wantCode = http.StatusOK
			rec := serve(app, tt)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_retrieveAndUpdate(t *testing.T) {
	app, svcs := setup(t)
	usr := testutil.CreateUser(t, svcs.user, "Jo Kabila", "jo@masomo.cd", user.RoleTeacher, true)
	testutil.CreateUser(t, svcs.user, "King", "king@masomo.cd", user.RoleParent, true)
	path := "/api/users/" + usr.ID

	tests := []httpTest{
		{name: "retrieve", path: path, wantCode: http.StatusOK, wantData: marshallData(t, usr)},
		{name: "retrieve: not found", path: "/api/users/lol", wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "not found"})},
		{
			name: "update: not found", method: http.MethodPut, path: "/api/users/lol", body: []byte(`{"name":"x"}`),
			wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "not found"}),
		},
		{
			name: "update: invalid", method: http.MethodPut, path: path,
			body:     []byte(`{"name":"J","avatar":"not a url","isActive":"maybe"}`),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, validationErr(
				core.FieldError{Field: "name", Message: "Name must be at least 2 characters long"},
				core.FieldError{Field: "avatar", Message: "Avatar must be a valid URL"},
				core.FieldError{Field: "isActive", Message: "Is active must be a boolean"},
			)),
		},
		{
			name: "update: email taken", method: http.MethodPut, path: path, body: []byte(`{"email":"king@masomo.cd"}`),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, validationErr(core.FieldError{Field: "email", Message: "A user with this email already exists"})),
		},
		{
			name: "update: valid", method: http.MethodPut, path: path,
			body:     []byte(`{"name":"Joseph Kabila","phone":"+243810000000","isActive":"false","role":"super_admin"}`),
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(app, tt)
			checkCodeAndData(t, tt, rec)
		})
	}

	got, err := svcs.user.GetByID(usr.ID)
	require.NoError(t, err)
	assert.Equal(t, "Joseph Kabila", got.Name)
	assert.Equal(t, "+243810000000", got.Phone)
	assert.False(t, got.IsActive)
	assert.Equal(t, user.RoleTeacher, got.Role) // not updatable
}
