package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
	repository "task-tracker.com/task-tracker/internal/repositories"
)

type MemberService struct {
	repo *repository.MemberRepository
}

func NewMemberService(repo *repository.MemberRepository) *MemberService {
	return &MemberService{repo: repo}
}

func (s *MemberService) CreateMember(ctx context.Context, req dto.CreateMemberRequest) (*model.Member, error) {
	member := &model.Member{Name: req.Name, Role: req.Role}

	if err := s.repo.Create(ctx, member); err != nil {
		if errors.Is(err, repository.ErrMemberNameTaken) {
			return nil, apperrors.MemberNameTaken(req.Name)
		}
		log.Error().Err(err).Str("name", req.Name).Msg("failed to create member")
		return nil, apperrors.CreationFailed("member", err)
	}

	log.Info().Uint("member_id", member.ID).Str("name", member.Name).Msg("member created")
	return member, nil
}

func (s *MemberService) ListMembers(ctx context.Context) ([]model.Member, error) {
	members, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list members")
		return nil, apperrors.RetrievalFailed("members", err)
	}
	return members, nil
}

func (s *MemberService) GetMember(ctx context.Context, id uint) (*model.Member, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return nil, apperrors.MemberNotFound(id)
		}
		log.Error().Err(err).Uint("member_id", id).Msg("failed to load member")
		return nil, apperrors.RetrievalFailed("member", err)
	}
	return member, nil
}

func (s *MemberService) UpdateMember(ctx context.Context, id uint, req dto.UpdateMemberRequest) (*model.Member, error) {
	changes := make(map[string]any)
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Role.Set {
		changes["role"] = req.Role.Value
	}

	member, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMemberNotFound):
			return nil, apperrors.MemberNotFound(id)
		case errors.Is(err, repository.ErrMemberNameTaken):
			return nil, apperrors.MemberNameTaken(*req.Name)
		}
		log.Error().Err(err).Uint("member_id", id).Msg("failed to update member")
		return nil, apperrors.UpdateFailed("member", err)
	}

	log.Info().Uint("member_id", id).Msg("member updated")
	return member, nil
}

// DeleteMember removes a member that has no tasks assigned and returns it.
func (s *MemberService) DeleteMember(ctx context.Context, id uint) (*model.Member, error) {
	member, err := s.repo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMemberNotFound):
			return nil, apperrors.MemberNotFound(id)
		case errors.Is(err, repository.ErrMemberHasTasks):
			return nil, apperrors.MemberHasTasks(member.Name)
		}
		log.Error().Err(err).Uint("member_id", id).Msg("failed to delete member")
		return nil, apperrors.DeletionFailed("member", err)
	}

	log.Info().Uint("member_id", id).Msg("member deleted")
	return member, nil
}
