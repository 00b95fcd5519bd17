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

// LearningService serves course material to enrolled learners and lets admins manage it.
type LearningService struct {
	EnrollmentRepo repositories.EnrollmentRepository
	CourseRepo     repositories.CourseRepository
	AssignmentRepo repositories.AssignmentRepository
	ResourceRepo   repositories.ResourceRepository
}

// requireAccess lets admins through and checks enrollment for everybody else.
func (s LearningService) requireAccess(ctx context.Context, courseID int64, rc domain.RequestContext) error {
	if courseID <= 0 {
		return domain.ValidationError{Field: "courseId", Msg: "courseId is required"}
	}
	if rc.IsAdmin {
		return nil
	}
	if !rc.Authenticated() {
		return domain.UnauthorizedError{}
	}
	ok, err := s.EnrollmentRepo.IsEnrolled(ctx, courseID, int64(rc.UserID), rc.Email)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ForbiddenError{Msg: "you are not enrolled in this course"}
	}
	return nil
}

func (s LearningService) MyEnrollments(ctx context.Context, rc domain.RequestContext) ([]models.Enrollment, error) {
	if !rc.Authenticated() {
		return nil, domain.UnauthorizedError{}
	}
	return s.EnrollmentRepo.ListForLearner(ctx, int64(rc.UserID), rc.Email)
}

func (s LearningService) AllEnrollments(ctx context.Context, page, limit int) ([]models.Enrollment, domain.Pagination, error) {
	p := domain.NewPagination(page, limit, 20, 100)
	list, total, err := s.EnrollmentRepo.List(ctx, p)
	if err != nil {
		return nil, p, err
	}
	return list, p.WithTotal(total), nil
}

func (s LearningService) Assignments(ctx context.Context, courseID int64, rc domain.RequestContext) ([]models.Assignment, error) {
	if err := s.requireAccess(ctx, courseID, rc); err != nil {
		return nil, err
	}
	return s.AssignmentRepo.ListByCourse(ctx, courseID)
}

func (s LearningService) SaveAssignment(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	if _, err := s.CourseRepo.GetByID(ctx, a.CourseID); err != nil {
		return models.Assignment{}, err
	}
	a.Title = utils.NormalizeSpace(a.Title)
	a.Description = strings.TrimSpace(a.Description)
	if a.ID == 0 {
		id, err := s.AssignmentRepo.Create(ctx, a)
		if err != nil {
			return models.Assignment{}, err
		}
		a.ID = id
		utils.LogEvent(ctx, "assignment", "create", "assignment created", zap.Int64("assignment_id", id))
		return a, nil
	}
	if err := s.AssignmentRepo.Update(ctx, a); err != nil {
		return models.Assignment{}, err
	}
	utils.LogEvent(ctx, "assignment", "update", "assignment updated", zap.Int64("assignment_id", a.ID))
	return a, nil
}

func (s LearningService) DeleteAssignment(ctx context.Context, id int64) error {
	return s.AssignmentRepo.Delete(ctx, id)
}

func (s LearningService) Resources(ctx context.Context, courseID int64, rc domain.RequestContext) ([]models.Resource, error) {
	if err := s.requireAccess(ctx, courseID, rc); err != nil {
		return nil, err
	}
	return s.ResourceRepo.ListByCourse(ctx, courseID)
}

func (s LearningService) AddResource(ctx context.Context, r models.Resource) (models.Resource, error) {
	if _, err := s.CourseRepo.GetByID(ctx, r.CourseID); err != nil {
		return models.Resource{}, err
	}
	r.Title = utils.NormalizeSpace(r.Title)
	id, err := s.ResourceRepo.Create(ctx, r)
	if err != nil {
		return models.Resource{}, err
	}
	r.ID = id
	utils.LogEvent(ctx, "resource", "create", "resource added", zap.Int64("resource_id", id))
	return r, nil
}

func (s LearningService) DeleteResource(ctx context.Context, id int64) error {
	return s.ResourceRepo.Delete(ctx, id)
}
