package auth

import (
	"context"
	"sync"
	"time"
)

type InMemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[string]*User
	nextID int64
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:  make(map[string]*User),
		nextID: 1,
	}
}

func (r *InMemoryUserRepository) Save(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return ErrUsernameTaken
	}

	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()

	stored := *user
	r.users[user.Username] = &stored
	return nil
}

func (r *InMemoryUserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.users[username]
	return exists, nil
}

func (r *InMemoryUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	found := *user
	return &found, nil
}
