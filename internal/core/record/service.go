package record

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/gestionale/gestionale/internal/core/registry"
	"github.com/gestionale/gestionale/internal/core/validation"
)

var ErrNotFound = errors.New("record not found")

type Service struct {
	repo      *Repository
	registry  *registry.Registry
	validator *validation.Validator
}

func NewService(repo *Repository, reg *registry.Registry, validator *validation.Validator) *Service {
	return &Service{repo: repo, registry: reg, validator: validator}
}

func (s *Service) Create(ctx context.Context, slug string, ownerID uuid.UUID, req *CreateRecordRequest) (*Record, error) {
	rt, err := s.registry.Get(slug)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(req.Data, rt); err != nil {
		return nil, err
	}

	owner := ownerID
	rec := &Record{
		ID:              uuid.New(),
		TypeSlug:        slug,
		OwnerID:         &owner,
		AttachmentType:  req.AttachmentType,
		VisibilityRoles: req.VisibilityRoles,
		Data:            req.Data,
	}
	if rec.VisibilityRoles == nil {
		rec.VisibilityRoles = []string{}
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRecordRequest) (*Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}

	rt, err := s.registry.Get(rec.TypeSlug)
	if err != nil {
		return nil, err
	}

	if req.Data != nil {
		for k, v := range req.Data {
			rec.Data[k] = v
		}
		if err := s.validator.Validate(rec.Data, rt); err != nil {
			return nil, err
		}
	}
	if req.AttachmentType != nil {
		rec.AttachmentType = *req.AttachmentType
	}
	if req.VisibilityRoles != nil {
		rec.VisibilityRoles = req.VisibilityRoles
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
