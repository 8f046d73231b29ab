package memory

import (
	"context"
	"sync"

	"github.com/sakif/quickpoll/internal/apperror"
	"github.com/sakif/quickpoll/internal/model"
	"github.com/sakif/quickpoll/internal/repository"
)

var _ repository.UserRepository = (*UserStore)(nil)

type UserStore struct {
	mu         sync.RWMutex
	nextID     int64
	byID       map[int64]model.User
	byUsername map[string]int64
}

func NewUserStore() *UserStore {
	return &UserStore{
		nextID:     1,
		byID:       make(map[int64]model.User),
		byUsername: make(map[string]int64),
	}
}

// Create stores user under the next id. The username lookup and the insert
// happen under one write lock.
func (s *UserStore) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[user.Username]; taken {
		return model.User{}, apperror.DuplicateUser(user.Username)
	}

	user.ID = s.nextID
	s.nextID++
	s.byID[user.ID] = user
	s.byUsername[user.Username] = user.ID
	return user, nil
}

func (s *UserStore) FindByID(_ context.Context, id int64) (model.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	return user, ok, nil
}

func (s *UserStore) FindByUsername(_ context.Context, username string) (model.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return model.User{}, false, nil
	}
	return s.byID[id], true, nil
}
