package testutil

import (
	"fmt"
	"sync"
	"testing"

	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/school"
	"github.com/trezcool/masomo/core/user"
)

// DefaultPassword satisfies the user.register password rules.
const DefaultPassword = "Pa$$w0rd!"

func CreateUser(t *testing.T, svc *user.Service, name, email, role string, isActive bool) user.User {
	t.Helper()
	usr, err := svc.Register(user.NewUser{Name: name, Email: email, Password: DefaultPassword, Role: role})
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	if !isActive {
		if usr, err = svc.Update(usr.ID, user.UpdateUser{IsActive: &isActive}); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	return usr
}

func CreateSchool(t *testing.T, svc *school.Service, name, code string) school.School {
	t.Helper()
	sch, err := svc.Create(school.NewSchool{SchoolName: name, Code: code, AdminEmail: "admin@" + code + ".cd", AdminName: "Admin"})
	if err != nil {
		t.Fatalf("CreateSchool() failed: %v", err)
	}
	return sch
}

func CreateClass(t *testing.T, svc *school.Service, schoolID, name, code string) school.Class {
	t.Helper()
	cls, err := svc.CreateClass(school.NewClass{Name: name, Code: code, SchoolID: schoolID, Subjects: []string{}})
	if err != nil {
		t.Fatalf("CreateClass() failed: %v", err)
	}
	return cls
}

// Logger records logged messages instead of reporting them.
type Logger struct {
	mu   sync.Mutex
	logs []string
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs = append(l.logs, fmt.Sprintf("%s: %s", level, msg))
}

// Logs returns the recorded "LEVEL: msg" lines.
func (l *Logger) Logs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.logs...)
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) { l.log("FATAL", msg, args) }
