package service

import (
	"context"

	"ownerapi/internal/owner/model"
	"ownerapi/internal/owner/repository"
	"ownerapi/internal/owner/schema"
	"ownerapi/socket"
)

// Notifier receives owner lifecycle events after a mutation commits.
// The websocket hub implements it.
type Notifier interface {
	Publish(event socket.Event)
}

type OwnerService struct {
	Repo     *repository.OwnerRepository
	Notifier Notifier
}

func NewOwnerService(repo *repository.OwnerRepository, notifier Notifier) *OwnerService {
	return &OwnerService{Repo: repo, Notifier: notifier}
}

func (s *OwnerService) Fetch(ctx context.Context, id int64) (*model.OwnerProjection, error) {
	o, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return projection(o), nil
}

func (s *OwnerService) Create(ctx context.Context, p *schema.CreatePayload) (int64, error) {
	o := &model.Owner{
		Owner:       p.Owner,
		Password:    HashPassword(p.Password),
		Heading:     p.Heading,
		Description: p.Description,
	}
	if err := s.Repo.Insert(ctx, o); err != nil {
		return 0, err
	}
	s.Notifier.Publish(socket.Event{Type: socket.OwnerCreated, Payload: projection(o)})
	return o.ID, nil
}

// Patch overwrites exactly the fields the client supplied. Fields
// absent from the payload keep their stored values.
func (s *OwnerService) Patch(ctx context.Context, id int64, p *schema.PatchPayload) (*model.PatchProjection, error) {
	o, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Owner != nil {
		o.Owner = *p.Owner
	}
	if p.Password != nil {
		o.Password = HashPassword(*p.Password)
	}
	if p.Heading != nil {
		o.Heading = p.Heading
	}
	if p.Description != nil {
		o.Description = p.Description
	}
	if err := s.Repo.Update(ctx, o); err != nil {
		return nil, err
	}
	s.Notifier.Publish(socket.Event{Type: socket.OwnerUpdated, Payload: projection(o)})
	return &model.PatchProjection{ID: o.ID, Owner: o.Owner, CreationTime: o.CreationTime}, nil
}

func (s *OwnerService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Notifier.Publish(socket.Event{Type: socket.OwnerDeleted, Payload: map[string]int64{"id": id}})
	return nil
}

func projection(o *model.Owner) *model.OwnerProjection {
	return &model.OwnerProjection{
		ID:           o.ID,
		Owner:        o.Owner,
		CreationTime: o.CreationTime,
		Heading:      o.Heading,
		Description:  o.Description,
	}
}
