package postgres

import "github.com/sakif/quickpoll/internal/model"

type userRow struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Username string `gorm:"column:username;not null;uniqueIndex"`
}

func (userRow) TableName() string {
	return "users"
}

func (r userRow) toModel() model.User {
	return model.User{ID: r.ID, Username: r.Username}
}

// pollRow stores the option labels as a JSON array; gorm's json serializer
// handles the encoding in both directions.
type pollRow struct {
	ID              int64    `gorm:"column:id;primaryKey;autoIncrement"`
	Title           string   `gorm:"column:title;not null"`
	Options         []string `gorm:"column:options;type:jsonb;serializer:json;not null"`
	CreatedByUserID int64    `gorm:"column:created_by_user_id;not null;index"`
}

func (pollRow) TableName() string {
	return "polls"
}

func pollRowFromModel(p model.Poll) pollRow {
	return pollRow{
		Title:           p.Title,
		Options:         append([]string(nil), p.Options...),
		CreatedByUserID: p.CreatedByUserID,
	}
}

func (r pollRow) toModel() model.Poll {
	return model.Poll{
		ID:              r.ID,
		Title:           r.Title,
		Options:         r.Options,
		CreatedByUserID: r.CreatedByUserID,
	}
}

// voteRow carries the composite unique index that makes a second vote by the
// same user on the same poll fail inside the database.
type voteRow struct {
	ID          int64 `gorm:"column:id;primaryKey;autoIncrement"`
	PollID      int64 `gorm:"column:poll_id;not null;uniqueIndex:idx_votes_poll_user,priority:1"`
	UserID      int64 `gorm:"column:user_id;not null;uniqueIndex:idx_votes_poll_user,priority:2"`
	OptionIndex int   `gorm:"column:option_index;not null"`
}

func (voteRow) TableName() string {
	return "votes"
}

func (r voteRow) toModel() model.Vote {
	return model.Vote{
		ID:          r.ID,
		PollID:      r.PollID,
		UserID:      r.UserID,
		OptionIndex: r.OptionIndex,
	}
}
