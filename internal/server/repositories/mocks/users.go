package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/google/uuid"
)

type UsersRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]models.User

	// Err, when set, is returned by every call.
	Err error
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{rows: make(map[uuid.UUID]models.User)}
}

func (r *UsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if u.Email != nil && r.byEmail(*u.Email) != nil {
		return nil, common.ErrorAlreadyExists
	}

	u.ID = uuid.New()
	if u.DateJoined.IsZero() {
		u.DateJoined = time.Now().UTC()
	}
	r.rows[u.ID] = clone(*u)
	return u, nil
}

func (r *UsersRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := clone(u)
	return &out, nil
}

func (r *UsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u := r.byEmail(email)
	if u == nil {
		return nil, common.ErrorNotFound
	}
	out := clone(*u)
	return &out, nil
}

func (r *UsersRepo) Update(_ context.Context, id uuid.UUID, p models.UserPatch) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.rows[id]
	if !ok {
		return nil, common.ErrorLostUpdate
	}
	if p.Email.Set && p.Email.Value != nil {
		if other := r.byEmail(*p.Email.Value); other != nil && other.ID != id {
			return nil, common.ErrorAlreadyExists
		}
	}

	if p.Name.Set {
		u.Name = p.Name.Value
	}
	if p.Email.Set {
		u.Email = p.Email.Value
	}
	if p.EmailVerified.Set {
		u.EmailVerified = p.EmailVerified.Value
	}
	if p.Image.Set {
		u.Image = p.Image.Value
	}
	r.rows[id] = clone(u)

	out := clone(u)
	return &out, nil
}

func (r *UsersRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	delete(r.rows, id)
	return nil
}

// Len returns the number of stored users.
func (r *UsersRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *UsersRepo) byEmail(email string) *models.User {
	for _, u := range r.rows {
		if u.Email != nil && *u.Email == email {
			return &u
		}
	}
	return nil
}

// clone copies the pointer fields so callers cannot mutate stored rows.
func clone(u models.User) models.User {
	u.Name = copyPtr(u.Name)
	u.Email = copyPtr(u.Email)
	u.EmailVerified = copyPtr(u.EmailVerified)
	u.Image = copyPtr(u.Image)
	u.AvatarBlobRef = copyPtr(u.AvatarBlobRef)
	if u.Roles != nil {
		u.Roles = append([]string(nil), u.Roles...)
	}
	return u
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
