package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/petgroom/admin-api/internal/model"
	"github.com/petgroom/admin-api/internal/repository"
	apperrors "github.com/petgroom/admin-api/pkg/errors"
	"github.com/petgroom/admin-api/pkg/metrics"
	"github.com/petgroom/admin-api/pkg/validator"
)

// Service is the client directory: registration, pet ownership, substring
// search and the single active selection the detail view tracks.
type Service struct {
	repo      repository.ClientRepository
	validator validator.Validator
	metrics   *metrics.Metrics

	mu       sync.Mutex
	selected uuid.UUID
}

func NewService(repo repository.ClientRepository, v validator.Validator, m *metrics.Metrics) *Service {
	return &Service{
		repo:      repo,
		validator: v,
		metrics:   m,
	}
}

func (s *Service) Register(ctx context.Context, req *model.CreateClientRequest) (*model.Client, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	client := &model.Client{
		ID:        uuid.New(),
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		Pets:      []model.Pet{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to register client: %w", err)
	}

	s.metrics.ClientsRegistered.Inc()
	return client, nil
}

// AddPet appends a pet to the client's collection, preserving registration
// order.
func (s *Service) AddPet(ctx context.Context, clientID uuid.UUID, req *model.CreatePetRequest) (*model.Pet, error) {
	var pet model.Pet
	_, err := s.repo.Mutate(ctx, clientID, func(c *model.Client) error {
		if err := s.validator.Validate(req); err != nil {
			return err
		}
		pet = model.Pet{
			ID:        uuid.New(),
			ClientID:  clientID,
			Name:      req.Name,
			Type:      model.PetType(req.Type),
			Breed:     req.Breed,
			Notes:     req.Notes,
			CreatedAt: time.Now().UTC(),
		}
		c.Pets = append(c.Pets, pet)
		c.UpdatedAt = pet.CreatedAt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.PetsRegistered.WithLabelValues(req.Type).Inc()
	return &pet, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Client, error) {
	return s.repo.List(ctx)
}

// Search matches the query case-insensitively against client and pet names.
// An empty query returns the whole directory in registration order.
func (s *Service) Search(ctx context.Context, query string) ([]*model.Client, error) {
	s.metrics.DirectorySearches.Inc()
	return s.repo.Search(ctx, query)
}

// Delete removes the client and, with it, every pet it owns. A deleted
// client's selection is cleared.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	if s.selected == id {
		s.selected = uuid.Nil
	}
	s.mu.Unlock()
	return nil
}

// DeletePet removes a single pet from its owner's collection.
func (s *Service) DeletePet(ctx context.Context, clientID, petID uuid.UUID) error {
	_, err := s.repo.Mutate(ctx, clientID, func(c *model.Client) error {
		for i, p := range c.Pets {
			if p.ID == petID {
				c.Pets = append(c.Pets[:i], c.Pets[i+1:]...)
				c.UpdatedAt = time.Now().UTC()
				return nil
			}
		}
		return apperrors.NewNotFound("pet", nil)
	})
	return err
}

// RecordPurchase bumps the client's purchase counter, mirroring a sale in
// the shop.
func (s *Service) RecordPurchase(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	return s.repo.Mutate(ctx, id, func(c *model.Client) error {
		c.TotalPurchases++
		c.UpdatedAt = time.Now().UTC()
		return nil
	})
}

// Select marks the client as active for the detail view. Selecting an
// unknown id fails and keeps the previous selection.
func (s *Service) Select(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.selected = id
	s.mu.Unlock()
	return client, nil
}

func (s *Service) Deselect() {
	s.mu.Lock()
	s.selected = uuid.Nil
	s.mu.Unlock()
}

// Selection returns the active client, or a not-found error when nothing is
// selected or the selection has since been deleted.
func (s *Service) Selection(ctx context.Context) (*model.Client, error) {
	s.mu.Lock()
	id := s.selected
	s.mu.Unlock()

	if id == uuid.Nil {
		return nil, apperrors.NewNotFound("selection", nil)
	}
	return s.repo.Get(ctx, id)
}
