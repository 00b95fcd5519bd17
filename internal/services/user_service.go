package services

import (
	"context"

	"agencylms/internal/domain"
	"agencylms/internal/domain/models"
	"agencylms/internal/repositories"
	"agencylms/internal/utils"

	"go.uber.org/zap"
)

// UserService is the admin user management surface.
type UserService struct {
	Repo repositories.UserRepository
}

func (s UserService) List(ctx context.Context, page, limit int) ([]models.User, domain.Pagination, error) {
	p := domain.NewPagination(page, limit, 20, 100)
	list, total, err := s.Repo.List(ctx, p)
	if err != nil {
		return nil, p, err
	}
	return list, p.WithTotal(total), nil
}

// SetAdmin refuses to let admins demote themselves so the site always keeps one.
func (s UserService) SetAdmin(ctx context.Context, id int64, isAdmin bool, rc domain.RequestContext) error {
	if id == int64(rc.UserID) && !isAdmin {
		return domain.ConflictError{Resource: "user", Msg: "you cannot remove your own admin access"}
	}
	if err := s.Repo.SetAdmin(ctx, id, isAdmin); err != nil {
		return err
	}
	utils.LogEvent(ctx, "user", "set_admin", "admin flag changed",
		zap.Int64("user_id", id), zap.Bool("is_admin", isAdmin), zap.Int64("by", int64(rc.UserID)))
	return nil
}

func (s UserService) Delete(ctx context.Context, id int64, rc domain.RequestContext) error {
	if id == int64(rc.UserID) {
		return domain.ConflictError{Resource: "user", Msg: "you cannot delete your own account"}
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(ctx, "user", "delete", "user deleted", zap.Int64("user_id", id), zap.Int64("by", int64(rc.UserID)))
	return nil
}
