// Package inmemdb implements every repository on top of mutex-guarded maps.
package inmemdb

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo/core/coursework"
	"github.com/trezcool/masomo/core/school"
	"github.com/trezcool/masomo/core/user"
)

type (
	DB struct {
		user       *table[user.User]
		school     *table[school.School]
		class      *table[school.Class]
		quiz       *table[coursework.Quiz]
		lessonPlan *table[coursework.LessonPlan]
	}

	table[T any] struct {
		rows  map[string]T
		ids   []string // insertion order
		mutex sync.RWMutex
	}
)

var (
	errRowExists  = errors.New("conflicting row exists")
	errRowMissing = errors.New("row does not exist")
)

func Open() *DB {
	return &DB{
		user:       newTable[user.User](),
		school:     newTable[school.School](),
		class:      newTable[school.Class](),
		quiz:       newTable[coursework.Quiz](),
		lessonPlan: newTable[coursework.LessonPlan](),
	}
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) insert(id string, row T) T {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if _, ok := t.rows[id]; !ok {
		t.ids = append(t.ids, id)
	}
	t.rows[id] = row
	return row
}

// save stores row under id unless another row satisfies conflicts. The check and the write
// share the write lock. With replace set, id must already exist.
func (t *table[T]) save(id string, row T, replace bool, conflicts func(T) bool) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	_, exists := t.rows[id]
	if replace && !exists {
		return errRowMissing
	}
	if conflicts != nil {
		for rid, other := range t.rows {
			if rid != id && conflicts(other) {
				return errRowExists
			}
		}
	}
	if !exists {
		t.ids = append(t.ids, id)
	}
	t.rows[id] = row
	return nil
}

func (t *table[T]) get(id string) (T, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	row, ok := t.rows[id]
	return row, ok
}

// filter returns the rows matching keep, in insertion order.
func (t *table[T]) filter(keep func(T) bool) []T {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	rows := make([]T, 0, len(t.rows))
	for _, id := range t.ids {
		if row := t.rows[id]; keep == nil || keep(row) {
			rows = append(rows, row)
		}
	}
	return rows
}
