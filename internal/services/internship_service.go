package services

import (
	"context"
	"strings"

	"agencylms/internal/domain"
	"agencylms/internal/domain/models"
	"agencylms/internal/repositories"
	"agencylms/internal/utils"

	"go.uber.org/zap"
)

type InternshipService struct {
	Repo repositories.InternshipRepository
}

func (s InternshipService) List(ctx context.Context, includeInactive bool) ([]models.Internship, error) {
	return s.Repo.List(ctx, !includeInactive)
}

// Get hides deactivated listings from the public site.
func (s InternshipService) Get(ctx context.Context, id int64, includeInactive bool) (models.Internship, error) {
	in, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return models.Internship{}, err
	}
	if !in.IsActive && !includeInactive {
		return models.Internship{}, domain.NotFoundError{Resource: "internship"}
	}
	return in, nil
}

func (s InternshipService) Save(ctx context.Context, in models.Internship) (models.Internship, error) {
	in.Title = utils.NormalizeSpace(in.Title)
	in.Mode = strings.ToLower(strings.TrimSpace(in.Mode))
	if in.ID == 0 {
		id, err := s.Repo.Create(ctx, in)
		if err != nil {
			return models.Internship{}, err
		}
		in.ID = id
		utils.LogEvent(ctx, "internship", "create", "internship posted", zap.Int64("internship_id", id))
		return in, nil
	}
	if err := s.Repo.Update(ctx, in); err != nil {
		return models.Internship{}, err
	}
	utils.LogEvent(ctx, "internship", "update", "internship updated", zap.Int64("internship_id", in.ID))
	return in, nil
}

func (s InternshipService) Deactivate(ctx context.Context, id int64) error {
	if err := s.Repo.Deactivate(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(ctx, "internship", "deactivate", "internship deactivated", zap.Int64("internship_id", id))
	return nil
}
