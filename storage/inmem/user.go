package inmemdb

import "github.com/trezcool/masomo/core/user"

type userRepository struct {
	db *table[user.User]
}

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.user}
}

func (repo *userRepository) CheckEmailUniqueness(email string, excludedIDs ...string) error {
	excluded := make(map[string]bool, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = true
	}
	matches := repo.db.filter(func(usr user.User) bool {
		return usr.Email == email && !excluded[usr.ID]
	})
	if len(matches) > 0 {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	return repo.save(usr, false)
}

func (repo *userRepository) save(usr user.User, replace bool) (user.User, error) {
	err := repo.db.save(usr.ID, usr, replace, func(other user.User) bool { return other.Email == usr.Email })
	switch err {
	case nil:
		return usr, nil
	case errRowExists:
		return user.User{}, user.ErrEmailExists
	default:
		return user.User{}, user.ErrNotFound
	}
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	if usr, ok := repo.db.get(id); ok {
		return usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	matches := repo.db.filter(func(usr user.User) bool { return usr.Email == email })
	if len(matches) == 0 {
		return user.User{}, user.ErrNotFound
	}
	return matches[0], nil
}

func (repo *userRepository) FilterUsers(filter user.QueryFilter) ([]user.User, error) {
	if filter.IsEmpty() {
		return repo.db.filter(nil), nil
	}
	return repo.db.filter(filter.Match), nil
}

func (repo *userRepository) UpdateUser(usr user.User) (user.User, error) {
	return repo.save(usr, true)
}
