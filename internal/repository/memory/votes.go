package memory

import (
	"context"
	"sync"

	"github.com/sakif/quickpoll/internal/apperror"
	"github.com/sakif/quickpoll/internal/model"
	"github.com/sakif/quickpoll/internal/repository"
)

var _ repository.VoteRepository = (*VoteStore)(nil)

// voteKey is the compound key enforcing one vote per user per poll.
type voteKey struct {
	pollID int64
	userID int64
}

// VoteStore keeps votes in id order plus two indexes: the compound key for
// uniqueness checks and a per-poll list for aggregation. All three are
// updated together under the write lock, so a reader sees a vote in every
// index or in none.
type VoteStore struct {
	mu         sync.RWMutex
	nextID     int64
	votes      []model.Vote
	byPollUser map[voteKey]int64
	byPoll     map[int64][]int64
}

func NewVoteStore() *VoteStore {
	return &VoteStore{
		nextID:     1,
		byPollUser: make(map[voteKey]int64),
		byPoll:     make(map[int64][]int64),
	}
}

func (s *VoteStore) Create(_ context.Context, vote model.Vote) (model.Vote, error) {
	key := voteKey{pollID: vote.PollID, userID: vote.UserID}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, voted := s.byPollUser[key]; voted {
		return model.Vote{}, apperror.DuplicateVote(vote.PollID, vote.UserID)
	}

	vote.ID = s.nextID
	s.nextID++
	s.votes = append(s.votes, vote)
	s.byPollUser[key] = vote.ID
	s.byPoll[vote.PollID] = append(s.byPoll[vote.PollID], vote.ID)
	return vote, nil
}

func (s *VoteStore) FindByID(_ context.Context, id int64) (model.Vote, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id < 1 || id > int64(len(s.votes)) {
		return model.Vote{}, false, nil
	}
	return s.votes[id-1], true, nil
}

func (s *VoteStore) FindAll(_ context.Context) ([]model.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append(make([]model.Vote, 0, len(s.votes)), s.votes...), nil
}

func (s *VoteStore) FindByPollAndUser(_ context.Context, pollID, userID int64) (model.Vote, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byPollUser[voteKey{pollID: pollID, userID: userID}]
	if !ok {
		return model.Vote{}, false, nil
	}
	return s.votes[id-1], true, nil
}

func (s *VoteStore) FindByPollID(_ context.Context, pollID int64) ([]model.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byPoll[pollID]
	result := make([]model.Vote, 0, len(ids))
	for _, id := range ids {
		result = append(result, s.votes[id-1])
	}
	return result, nil
}
