package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sakif/quickpoll/internal/apperror"
)

func TestPollCreate(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	poll, err := s.polls.Create(ctx, "Lunch", []string{"Pizza", "Salad"}, 7)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if poll.ID != 1 || poll.Title != "Lunch" || poll.CreatedByUserID != 7 {
		t.Errorf("Create() = %+v", poll)
	}
	if len(poll.Options) != 2 || poll.Options[0] != "Pizza" || poll.Options[1] != "Salad" {
		t.Errorf("Options = %v", poll.Options)
	}

	next, _ := s.polls.Create(ctx, "Dinner", []string{"Soup", "Steak"}, 7)
	if next.ID <= poll.ID {
		t.Errorf("second id %d not greater than first %d", next.ID, poll.ID)
	}
}

func TestPollCreate_CopiesOptions(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	options := []string{"Pizza", "Salad"}
	poll, _ := s.polls.Create(ctx, "Lunch", options, 1)
	options[0] = "Tacos"

	got, _ := s.polls.GetByID(ctx, poll.ID)
	if got.Options[0] != "Pizza" {
		t.Errorf("stored option changed to %q", got.Options[0])
	}
}

func TestPollCreate_Validation(t *testing.T) {
	six := []string{"a", "b", "c", "d", "e", "f"}

	tests := []struct {
		name      string
		title     string
		options   []string
		creator   int64
		reason    string
		wantField string
	}{
		{"empty title", "", []string{"a", "b"}, 1, apperror.ReasonTitle, "title"},
		{"title punctuation", "Lunch?", []string{"a", "b"}, 1, apperror.ReasonTitle, "title"},
		{"no options", "Lunch", nil, 1, apperror.ReasonOptionsCount, "options"},
		{"one option", "Lunch", []string{"a"}, 1, apperror.ReasonOptionsCount, "options"},
		{"seven options", "Lunch", append(six, "g"), 1, apperror.ReasonOptionsCount, "options"},
		{"empty option", "Lunch", []string{"a", ""}, 1, apperror.ReasonOptionLabel, "options"},
		{"option punctuation", "Lunch", []string{"a", "b-c"}, 1, apperror.ReasonOptionLabel, "options"},
		{"zero creator", "Lunch", []string{"a", "b"}, 0, apperror.ReasonCreatorID, "createdByUserId"},
		{"negative creator", "Lunch", []string{"a", "b"}, -3, apperror.ReasonCreatorID, "createdByUserId"},
		// Several bad inputs: the first check in order wins.
		{"title before count", "", []string{"a"}, 0, apperror.ReasonTitle, "title"},
		{"count before label", "Lunch", []string{""}, 0, apperror.ReasonOptionsCount, "options"},
		{"label before creator", "Lunch", []string{"a", "!"}, 0, apperror.ReasonOptionLabel, "options"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServices(t)
			ctx := context.Background()

			_, err := s.polls.Create(ctx, tt.title, tt.options, tt.creator)
			assertKind(t, err, apperror.ErrInvalidPollInput)
			assertField(t, err, tt.wantField)

			var appErr *apperror.AppError
			errors.As(err, &appErr)
			if appErr.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", appErr.Reason, tt.reason)
			}

			all, _ := s.polls.GetAll(ctx)
			if len(all) != 0 {
				t.Errorf("rejected poll was stored: %+v", all)
			}
		})
	}
}

func TestPollCreate_OptionBounds(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	if _, err := s.polls.Create(ctx, "Two", []string{"a", "b"}, 1); err != nil {
		t.Errorf("2 options: error = %v", err)
	}
	if _, err := s.polls.Create(ctx, "Six", strings.Fields("a b c d e f"), 1); err != nil {
		t.Errorf("6 options: error = %v", err)
	}
}

func TestPollCreate_RepositoryError(t *testing.T) {
	svc := NewPollService(failingPolls{}, testLogger())
	_, err := svc.Create(context.Background(), "Lunch", []string{"a", "b"}, 1)
	if !errors.Is(err, errStorage) {
		t.Errorf("error = %v, want wrapped storage error", err)
	}
}

func TestPollGetByID(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	created := createTestPoll(t, s, "Lunch", "Pizza", "Salad")

	got, err := s.polls.GetByID(ctx, created.ID)
	if err != nil || got.Title != "Lunch" {
		t.Errorf("GetByID() = (%+v, %v)", got, err)
	}

	_, err = s.polls.GetByID(ctx, 42)
	assertKind(t, err, apperror.ErrPollNotFound)

	_, err = s.polls.GetByID(ctx, 0)
	assertKind(t, err, apperror.ErrInvalidInput)
}

func TestPollGetAll(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	empty, err := s.polls.GetAll(ctx)
	if err != nil || len(empty) != 0 {
		t.Errorf("GetAll() on empty store = (%v, %v)", empty, err)
	}

	createTestPoll(t, s, "First", "a", "b")
	createTestPoll(t, s, "Second", "a", "b")

	all, _ := s.polls.GetAll(ctx)
	if len(all) != 2 || all[0].Title != "First" || all[1].Title != "Second" {
		t.Errorf("GetAll() = %+v", all)
	}
}

func TestPollGetByUserID(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	s.polls.Create(ctx, "Mine", []string{"a", "b"}, 1)
	s.polls.Create(ctx, "Theirs", []string{"a", "b"}, 2)

	mine, err := s.polls.GetByUserID(ctx, 1)
	if err != nil || len(mine) != 1 || mine[0].Title != "Mine" {
		t.Errorf("GetByUserID(1) = (%+v, %v)", mine, err)
	}

	none, err := s.polls.GetByUserID(ctx, 3)
	if err != nil {
		t.Fatalf("GetByUserID(3) error = %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("GetByUserID(3) = %#v, want empty non-nil slice", none)
	}

	_, err = s.polls.GetByUserID(ctx, -1)
	assertKind(t, err, apperror.ErrInvalidInput)
	assertField(t, err, "userId")
}
