package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Pawandasila/ai-image-editor/internal/auth"
	"github.com/Pawandasila/ai-image-editor/internal/events"
	"github.com/Pawandasila/ai-image-editor/internal/model"
	"github.com/Pawandasila/ai-image-editor/internal/repository"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidPlan  = errors.New("unknown plan")
)

type UserService interface {
	SyncUser(ctx context.Context, identity *auth.Identity) (uuid.UUID, error)
	GetByToken(ctx context.Context, tokenIdentifier string) (*model.User, error)
	UpdatePlan(ctx context.Context, userID uuid.UUID, plan string) error
	RecordExport(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	userRepo  repository.UserRepository
	publisher events.EventPublisher
}

func NewUserService(userRepo repository.UserRepository, pub events.EventPublisher) UserService {
	return &userService{userRepo: userRepo, publisher: pub}
}

// SyncUser maps an authenticated identity to a local User, creating one on
// first sight. When the identity's display name moved since last sync, the
// stored name is patched; nothing else is re-synced.
func (s *userService) SyncUser(ctx context.Context, identity *auth.Identity) (uuid.UUID, error) {
	user, err := s.userRepo.FindByToken(ctx, identity.TokenIdentifier)
	if err != nil {
		return uuid.Nil, err
	}

	if user != nil {
		if identity.Name != "" && user.Name != identity.Name {
			if err := s.userRepo.UpdateName(ctx, user.ID, identity.Name); err != nil {
				return uuid.Nil, err
			}
		}
		return user.ID, nil
	}

	name := identity.Name
	if name == "" {
		name = "Anonymous"
	}

	newUser := &model.User{
		TokenIdentifier: identity.TokenIdentifier,
		Name:            name,
		Plan:            model.PlanFree,
	}
	if identity.Email != "" {
		newUser.Email = &identity.Email
	}
	if identity.ImageURL != "" {
		newUser.ImageURL = &identity.ImageURL
	}

	return s.userRepo.Create(ctx, newUser)
}

func (s *userService) GetByToken(ctx context.Context, tokenIdentifier string) (*model.User, error) {
	user, err := s.userRepo.FindByToken(ctx, tokenIdentifier)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func (s *userService) UpdatePlan(ctx context.Context, userID uuid.UUID, plan string) error {
	if !model.IsValidPlan(plan) {
		return ErrInvalidPlan
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if user == nil {
		return ErrUserNotFound
	}

	if err := s.userRepo.UpdatePlan(ctx, userID, plan); err != nil {
		return err
	}

	go s.publisher.PublishPlanUpdated(userID, plan)

	return nil
}

func (s *userService) RecordExport(ctx context.Context, userID uuid.UUID) error {
	return s.userRepo.IncrementExports(ctx, userID)
}
