package user

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/masomo/core"
)

// Roles
const (
	RoleSuperAdmin  = "super_admin"
	RoleSchoolAdmin = "school_admin"
	RoleTeacher     = "teacher"
	RoleParent      = "parent"
	RoleStudent     = "student"
)

var (
	AdminRoles = []string{RoleSuperAdmin, RoleSchoolAdmin}
	AllRoles   = []string{RoleSuperAdmin, RoleSchoolAdmin, RoleTeacher, RoleParent, RoleStudent}

	Roles = []Role{
		{Name: "Super Admin", Value: RoleSuperAdmin},
		{Name: "School Admin", Value: RoleSchoolAdmin},
		{Name: "Teacher", Value: RoleTeacher},
		{Name: "Parent", Value: RoleParent},
		{Name: "Student", Value: RoleStudent},
	}
)

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	SchoolID     string    `json:"schoolId,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	IsActive     bool      `json:"isActive"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"` // UTC
	UpdatedAt    time.Time `json:"updatedAt"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool {
	for _, role := range AdminRoles {
		if u.Role == role {
			return true
		}
	}
	return false
}

// NewUser contains information needed to create a new User.
// It is bound from a payload already normalized by the user.register schema.
type NewUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	SchoolID string `json:"schoolId"`
	Phone    string `json:"phone"`
}

// UpdateUser defines what information may be provided to modify an existing User.
// Nil fields are left untouched.
type UpdateUser struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Avatar   *string `json:"avatar"`
	SchoolID *string `json:"schoolId"`
	IsActive *bool   `json:"isActive"`
	Password *string `json:"password"`
}

// Credentials is the body of a login request.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type QueryFilter struct {
	Search   string `query:"search"`
	Role     string `query:"role"`
	SchoolID string `query:"schoolId"`
	IsActive *bool  `query:"isActive"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Role == "" && qf.SchoolID == "" && qf.IsActive == nil
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Role = core.CleanString(qf.Role, true /* lower */)
	qf.SchoolID = core.CleanString(qf.SchoolID)
}

// Match reports whether usr satisfies every set field of the filter.
// Search does a case-insensitive match on one of User.Name or User.Email.
func (qf *QueryFilter) Match(usr User) bool {
	if qf.Search != "" {
		s := strings.ToLower(qf.Search)
		if !strings.Contains(strings.ToLower(usr.Name), s) && !strings.Contains(usr.Email, s) {
			return false
		}
	}
	if qf.Role != "" && usr.Role != qf.Role {
		return false
	}
	if qf.SchoolID != "" && usr.SchoolID != qf.SchoolID {
		return false
	}
	if qf.IsActive != nil && usr.IsActive != *qf.IsActive {
		return false
	}
	return true
}
