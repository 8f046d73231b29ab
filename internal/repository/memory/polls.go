package memory

import (
	"context"
	"sync"

	"github.com/sakif/quickpoll/internal/model"
	"github.com/sakif/quickpoll/internal/repository"
)

var _ repository.PollRepository = (*PollStore)(nil)

// PollStore keeps polls in a slice ordered by id. Ids start at 1 and polls
// are never deleted, so the poll with id n lives at index n-1.
type PollStore struct {
	mu     sync.RWMutex
	nextID int64
	polls  []model.Poll
}

func NewPollStore() *PollStore {
	return &PollStore{nextID: 1}
}

func (s *PollStore) Create(_ context.Context, poll model.Poll) (model.Poll, error) {
	poll = poll.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	poll.ID = s.nextID
	s.nextID++
	s.polls = append(s.polls, poll)
	return poll.Clone(), nil
}

func (s *PollStore) FindByID(_ context.Context, id int64) (model.Poll, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id < 1 || id > int64(len(s.polls)) {
		return model.Poll{}, false, nil
	}
	return s.polls[id-1].Clone(), true, nil
}

func (s *PollStore) FindAll(_ context.Context) ([]model.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Poll, 0, len(s.polls))
	for _, p := range s.polls {
		result = append(result, p.Clone())
	}
	return result, nil
}

// FindAllByUserID scans every poll. Fine at this scale; an index by creator
// would be the next step if poll counts grow.
func (s *PollStore) FindAllByUserID(_ context.Context, userID int64) ([]model.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Poll, 0)
	for _, p := range s.polls {
		if p.CreatedByUserID == userID {
			result = append(result, p.Clone())
		}
	}
	return result, nil
}
