package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/petgroom/admin-api/internal/model"
	"github.com/petgroom/admin-api/internal/repository"
	apperrors "github.com/petgroom/admin-api/pkg/errors"
)

type clientRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]model.Client
	// order keeps directory order: registration first to last.
	order []uuid.UUID
}

func NewClientRepository() repository.ClientRepository {
	return &clientRepo{
		byID: make(map[uuid.UUID]model.Client),
	}
}

func clone(c model.Client) model.Client {
	out := c
	out.Pets = make([]model.Pet, len(c.Pets))
	copy(out.Pets, c.Pets)
	return out
}

func (r *clientRepo) Create(ctx context.Context, client *model.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if client.ID == uuid.Nil {
		return apperrors.NewBadRequest("client id required", nil)
	}
	if _, exists := r.byID[client.ID]; exists {
		return apperrors.NewBadRequest("client already exists", nil)
	}

	r.byID[client.ID] = clone(*client)
	r.order = append(r.order, client.ID)
	return nil
}

func (r *clientRepo) Get(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NewNotFound("client", nil)
	}
	out := clone(c)
	return &out, nil
}

func (r *clientRepo) Update(ctx context.Context, client *model.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[client.ID]; !ok {
		return apperrors.NewNotFound("client", nil)
	}
	r.byID[client.ID] = clone(*client)
	return nil
}

func (r *clientRepo) Mutate(ctx context.Context, id uuid.UUID, fn func(*model.Client) error) (*model.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NewNotFound("client", nil)
	}
	// fn works on a copy; nothing is stored when it fails.
	working := clone(c)
	if err := fn(&working); err != nil {
		return nil, err
	}
	r.byID[id] = clone(working)

	out := clone(working)
	return &out, nil
}

func (r *clientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return apperrors.NewNotFound("client", nil)
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *clientRepo) List(ctx context.Context) ([]*model.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Client, 0, len(r.order))
	for _, id := range r.order {
		c := clone(r.byID[id])
		out = append(out, &c)
	}
	return out, nil
}

// Search matches the query as a case-insensitive substring of the client
// name or any owned pet's name, preserving directory order. An empty query
// matches every client.
func (r *clientRepo) Search(ctx context.Context, query string) ([]*model.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]*model.Client, 0)
	for _, id := range r.order {
		c := r.byID[id]
		if q == "" || matches(c, q) {
			cc := clone(c)
			out = append(out, &cc)
		}
	}
	return out, nil
}

func matches(c model.Client, q string) bool {
	if strings.Contains(strings.ToLower(c.Name), q) {
		return true
	}
	for _, p := range c.Pets {
		if strings.Contains(strings.ToLower(p.Name), q) {
			return true
		}
	}
	return false
}
