package model

// Poll is a multiple-choice question.
//
// Options is ordered: a vote refers to an option by its index, so the order
// is part of the poll's identity and never changes after creation.
//
// WHY NO UPDATE/DELETE?
// Polls are immutable once stored. That is what lets the vote service check
// "does the poll exist and is the index in range?" and then write the vote
// without holding a lock across both repositories: nothing can change the
// poll in between.
type Poll struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Options         []string `json:"options"`
	CreatedByUserID int64    `json:"createdByUserId"`
}

// Clone returns a deep copy of the poll. Repositories hand out clones so a
// caller appending to Options can never reach the stored slice.
func (p Poll) Clone() Poll {
	p.Options = append([]string(nil), p.Options...)
	return p
}

// Results is the on-demand tally of a poll's votes.
//
// Counts has exactly one entry per option (Counts[i] is the number of votes
// for Options[i]); Total is the number of votes recorded for the poll.
type Results struct {
	PollID int64 `json:"pollId"`
	Counts []int `json:"counts"`
	Total  int   `json:"total"`
}
