package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sakif/quickpoll/internal/apperror"
	"github.com/sakif/quickpoll/internal/model"
	"github.com/sakif/quickpoll/internal/repository/memory"
)

func TestLoginOrCreate_NewUser(t *testing.T) {
	s := newServices(t)

	user, err := s.users.LoginOrCreate(context.Background(), "alice")
	if err != nil {
		t.Fatalf("LoginOrCreate() error = %v", err)
	}
	if user.ID != 1 || user.Username != "alice" {
		t.Errorf("LoginOrCreate() = %+v, want {1 alice}", user)
	}
}

func TestLoginOrCreate_Idempotent(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	first, _ := s.users.LoginOrCreate(ctx, "alice")
	second, err := s.users.LoginOrCreate(ctx, "alice")
	if err != nil {
		t.Fatalf("second LoginOrCreate() error = %v", err)
	}
	if first != second {
		t.Errorf("second login = %+v, want %+v", second, first)
	}

	// No second row was created: the next new user gets id 2.
	bobby, _ := s.users.LoginOrCreate(ctx, "bobby")
	if bobby.ID != 2 {
		t.Errorf("next user id = %d, want 2", bobby.ID)
	}
}

func TestLoginOrCreate_InvalidUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
	}{
		{"empty", ""},
		{"too short", "abc"},
		{"too long", "abcdefghijklm"},
		{"space", "ali ce"},
		{"punctuation", "alice!"},
		{"non ascii", "élise"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServices(t)
			_, err := s.users.LoginOrCreate(context.Background(), tt.username)
			assertKind(t, err, apperror.ErrInvalidUsername)
			assertField(t, err, "username")

			if _, found, _ := s.store.Users.FindByUsername(context.Background(), tt.username); found {
				t.Error("invalid username was stored")
			}
		})
	}
}

func TestLoginOrCreate_BoundaryLengths(t *testing.T) {
	s := newServices(t)
	for _, name := range []string{"abcd", "abcdefghijkl"} {
		if _, err := s.users.LoginOrCreate(context.Background(), name); err != nil {
			t.Errorf("LoginOrCreate(%q) error = %v", name, err)
		}
	}
}

func TestLoginOrCreate_ConcurrentFirstLogins(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	const workers = 32
	var wg sync.WaitGroup
	ids := make(chan int64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			user, err := s.users.LoginOrCreate(ctx, "racer")
			if err != nil {
				t.Errorf("LoginOrCreate() error = %v", err)
				return
			}
			ids <- user.ID
		}()
	}
	wg.Wait()
	close(ids)

	for id := range ids {
		if id != 1 {
			t.Errorf("got user id %d, want every caller to see 1", id)
		}
	}
}

// racingUsers misses the first lookup and then reports a duplicate, the way
// a losing concurrent create does.
type racingUsers struct {
	*memory.UserStore
	lookups int
}

func (r *racingUsers) FindByUsername(ctx context.Context, username string) (model.User, bool, error) {
	r.lookups++
	if r.lookups == 1 {
		return model.User{}, false, nil
	}
	return r.UserStore.FindByUsername(ctx, username)
}

func TestLoginOrCreate_LosesRace(t *testing.T) {
	store := memory.NewUserStore()
	winner, _ := store.Create(context.Background(), model.User{Username: "alice"})

	svc := NewUserService(&racingUsers{UserStore: store}, testLogger())
	got, err := svc.LoginOrCreate(context.Background(), "alice")
	if err != nil {
		t.Fatalf("LoginOrCreate() error = %v", err)
	}
	if got != winner {
		t.Errorf("LoginOrCreate() = %+v, want the winner %+v", got, winner)
	}
}

func TestLoginOrCreate_RepositoryError(t *testing.T) {
	svc := NewUserService(failingUsers{}, testLogger())
	_, err := svc.LoginOrCreate(context.Background(), "alice")
	if !errors.Is(err, errStorage) {
		t.Fatalf("error = %v, want wrapped storage error", err)
	}
	if errors.Is(err, apperror.ErrValidation) {
		t.Error("storage failure must not look like a validation error")
	}
}

func TestUserGetByID(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	created, _ := s.users.LoginOrCreate(ctx, "alice")

	got, err := s.users.GetByID(ctx, created.ID)
	if err != nil || got != created {
		t.Errorf("GetByID() = (%+v, %v), want %+v", got, err, created)
	}

	_, err = s.users.GetByID(ctx, 99)
	assertKind(t, err, apperror.ErrNotFound)

	_, err = s.users.GetByID(ctx, 0)
	assertKind(t, err, apperror.ErrInvalidInput)
	assertField(t, err, "id")
}
