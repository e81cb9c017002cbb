package memory_repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/develophasan/SlotyPi/internal/model"
	"github.com/develophasan/SlotyPi/internal/repository"
)

type userRepo struct {
	store *Store
}

func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepo{store: store}
}

func (r *userRepo) UpsertByPiUID(_ context.Context, user *model.User) (*model.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if id, ok := r.store.usersByPi[user.PiUID]; ok {
		u := r.store.users[id]
		u.Username = user.Username
		r.store.users[id] = u
		return &u, nil
	}

	u := model.User{
		ID:        uuid.NewString(),
		PiUID:     user.PiUID,
		Username:  user.Username,
		CreatedAt: time.Now().UTC(),
	}
	r.store.users[u.ID] = u
	r.store.usersByPi[u.PiUID] = u.ID
	return &u, nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}
