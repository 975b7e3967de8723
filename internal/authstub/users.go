package authstub

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	errEmailTaken   = errors.New("email already registered")
	errUserNotFound = errors.New("user not found")
)

type user struct {
	ID             int64
	Email          string
	Username       string
	HashedPassword []byte
	CreatedAt      time.Time
}

type userStore struct {
	mu     sync.RWMutex
	byMail map[string]user
	nextID int64
}

func newUserStore() *userStore {
	return &userStore{
		byMail: make(map[string]user),
		nextID: 1,
	}
}

func (s *userStore) create(email, username, password string, now time.Time) (user, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byMail[email]; ok {
		return user{}, errEmailTaken
	}

	u := user{
		ID:             s.nextID,
		Email:          email,
		Username:       username,
		HashedPassword: hash,
		CreatedAt:      now.UTC(),
	}
	s.byMail[email] = u
	s.nextID++

	return u, nil
}

func (s *userStore) get(email string) (user, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byMail[email]
	if !ok {
		return user{}, errUserNotFound
	}
	return u, nil
}

// authenticate returns the user when password matches its stored hash.
func (s *userStore) authenticate(email, password string) (user, error) {
	u, err := s.get(email)
	if err != nil {
		return user{}, err
	}

	if err := bcrypt.CompareHashAndPassword(u.HashedPassword, []byte(password)); err != nil {
		return user{}, err
	}
	return u, nil
}
