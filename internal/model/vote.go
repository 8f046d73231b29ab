package model

// Vote records one user's choice on one poll.
// At most one Vote exists per (PollID, UserID) pair.
type Vote struct {
	ID          int64 `json:"id"`
	PollID      int64 `json:"pollId"`
	UserID      int64 `json:"userId"`
	OptionIndex int   `json:"optionIndex"`
}

// UserVote answers "has this user voted on this poll?".
// Vote is nil when HasVoted is false.
type UserVote struct {
	HasVoted bool  `json:"hasVoted"`
	Vote     *Vote `json:"vote,omitempty"`
}
