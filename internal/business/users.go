package business

import (
	"context"

	"github.com/sakif/quickpoll/internal/model"
	"github.com/sakif/quickpoll/internal/service"
)

type Users struct {
	users *service.UserService
}

func NewUsers(users *service.UserService) *Users {
	return &Users{users: users}
}

// Login returns the user named username, creating it on first use.
func (u *Users) Login(ctx context.Context, username string) (model.User, error) {
	return u.users.LoginOrCreate(ctx, username)
}

func (u *Users) GetUser(ctx context.Context, id int64) (model.User, error) {
	return u.users.GetByID(ctx, id)
}
