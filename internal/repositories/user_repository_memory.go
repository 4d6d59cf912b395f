package repositories

import (
	"context"
	"strings"
	"sync"
	"time"

	"savaan_backend/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryUserRepository keeps registrants in process memory. It backs the
// development mode without a Mongo instance and the test suite, and enforces
// the same uniqueness contract as the Mongo store.
type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User // keyed by hex ID
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users: make(map[string]*models.User),
	}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Collision attribution checks each unique field across every record
	// before moving to the next, so the reported field follows the Mongo
	// index ordering even when different records collide on different
	// fields.
	checks := []struct {
		field string
		hit   func(*models.User) bool
	}{
		{"email", func(e *models.User) bool { return strings.EqualFold(e.Email, user.Email) }},
		{"mobile number", func(e *models.User) bool { return e.Mobile == user.Mobile }},
		{"Aadhar number", func(e *models.User) bool { return e.Aadhar == user.Aadhar }},
		{"PAN number", func(e *models.User) bool { return e.PAN == user.PAN }},
		{"department ID", func(e *models.User) bool { return e.DepartmentID == user.DepartmentID }},
	}
	for _, check := range checks {
		for _, existing := range r.users {
			if check.hit(existing) {
				return nil, &DuplicateKeyError{Field: check.field}
			}
		}
	}

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	clone := *user
	r.users[user.ID.Hex()] = &clone
	return user, nil
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *memoryUserRepository) findFirst(match func(*models.User) bool) (*models.User, error) {
	for _, user := range r.users {
		if match(user) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *memoryUserRepository) FindByMobile(ctx context.Context, mobile string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.findFirst(func(u *models.User) bool {
		return u.Mobile == mobile
	})
}

func (r *memoryUserRepository) FindByAnyIdentity(ctx context.Context, q models.IdentityQuery) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.findFirst(func(u *models.User) bool {
		return (q.Email != "" && strings.EqualFold(u.Email, q.Email)) ||
			(q.Mobile != "" && u.Mobile == q.Mobile) ||
			(q.Aadhar != "" && u.Aadhar == q.Aadhar) ||
			(q.PAN != "" && u.PAN == q.PAN) ||
			(q.DepartmentID != "" && u.DepartmentID == q.DepartmentID)
	})
}

func (r *memoryUserRepository) FindByDepartmentAndIdentity(ctx context.Context, departmentID, emailOrMobile string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.findFirst(func(u *models.User) bool {
		return u.DepartmentID == departmentID &&
			(strings.EqualFold(u.Email, emailOrMobile) || u.Mobile == emailOrMobile)
	})
}

func (r *memoryUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, *user)
	}
	// Newest registrations first, matching the Mongo sort.
	for i := 0; i < len(users); i++ {
		for j := i + 1; j < len(users); j++ {
			if users[j].RegistrationDate.After(users[i].RegistrationDate) {
				users[i], users[j] = users[j], users[i]
			}
		}
	}
	return users, nil
}

func (r *memoryUserRepository) UpdatePassword(ctx context.Context, id, newHash string, changedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	user.PasswordHash = newHash
	user.PasswordChangedAt = &changedAt
	return nil
}

func (r *memoryUserRepository) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	user.LastLogin = &ts
	return nil
}

func (r *memoryUserRepository) UpdateManagementFee(ctx context.Context, id string, fee models.ManagementFee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	user.ManagementFee = fee
	return nil
}

// Ping always succeeds; the memory store has no connection to lose.
func (r *memoryUserRepository) Ping(ctx context.Context) error {
	return ErrNoDatabase
}
