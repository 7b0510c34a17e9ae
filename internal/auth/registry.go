package auth

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmail       = errors.New("email is required")
	ErrInvalidName        = errors.New("name is required")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// User is a registered account.
type User struct {
	ID           string
	Email        string
	Name         string
	WhatsApp     string
	PasswordHash string
	CreatedAt    time.Time
}

// Registry keeps registered users in process memory with bcrypt-hashed
// passwords. Accounts live as long as the process; durable user storage is
// a collaborator this storefront does not implement.
type Registry struct {
	mu      sync.RWMutex
	byEmail map[string]*User
	byID    map[string]*User
}

func NewRegistry() *Registry {
	return &Registry{
		byEmail: make(map[string]*User),
		byID:    make(map[string]*User),
	}
}

// Register creates a new account. Email comparison is case-insensitive.
func (r *Registry) Register(name, email, whatsapp, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrInvalidEmail
	}
	if name == "" {
		return nil, ErrInvalidName
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[email]; exists {
		return nil, ErrEmailTaken
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		WhatsApp:     whatsapp,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	r.byEmail[email] = user
	r.byID[user.ID] = user

	u := *user
	return &u, nil
}

// Login checks credentials and returns the account. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (r *Registry) Login(email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	r.mu.RLock()
	user, exists := r.byEmail[email]
	r.mu.RUnlock()

	if !exists || !CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	u := *user
	return &u, nil
}

// Get returns the account with the given id.
func (r *Registry) Get(id string) (*User, error) {
	r.mu.RLock()
	user, exists := r.byID[id]
	r.mu.RUnlock()

	if !exists {
		return nil, ErrUserNotFound
	}
	u := *user
	return &u, nil
}
