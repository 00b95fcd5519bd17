package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"agencylms/internal/cache"
	"agencylms/internal/domain"
	"agencylms/internal/domain/models"
	"agencylms/internal/repositories"
	"agencylms/internal/utils"

	"go.uber.org/zap"
)

const courseVersionKey = "courses:version"

// CourseService serves the catalog. List results are cached per catalog version;
// every write bumps the version so stale pages are never read again.
type CourseService struct {
	Repo  repositories.CourseRepository
	Cache cache.Cache
	TTL   time.Duration
}

type CoursePage struct {
	Courses    []models.Course   `json:"courses"`
	Pagination domain.Pagination `json:"pagination"`
}

func (s CourseService) List(ctx context.Context, f models.CourseFilter) (CoursePage, error) {
	p := domain.NewPagination(f.Page, f.Limit, 12, 100)
	key := s.listKey(ctx, f, p)
	if key != "" {
		if raw, ok := s.Cache.Get(ctx, key); ok {
			var page CoursePage
			if err := json.Unmarshal(raw, &page); err == nil {
				return page, nil
			}
		}
	}

	list, total, err := s.Repo.List(ctx, f, p)
	if err != nil {
		return CoursePage{}, err
	}
	page := CoursePage{Courses: list, Pagination: p.WithTotal(total)}
	if key != "" {
		if raw, err := json.Marshal(page); err == nil {
			s.Cache.Set(ctx, key, raw, s.ttl())
		}
	}
	return page, nil
}

func (s CourseService) Get(ctx context.Context, id int64, includeHidden bool) (models.Course, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return models.Course{}, err
	}
	if !c.IsPublished && !includeHidden {
		return models.Course{}, domain.NotFoundError{Resource: "course"}
	}
	return c, nil
}

func (s CourseService) Create(ctx context.Context, c models.Course) (models.Course, error) {
	c = normalizeCourse(c)
	id, err := s.Repo.Create(ctx, c)
	if err != nil {
		return models.Course{}, err
	}
	c.ID = id
	s.invalidate(ctx)
	utils.LogEvent(ctx, "course", "create", "course created", zap.Int64("course_id", id))
	return c, nil
}

func (s CourseService) Update(ctx context.Context, c models.Course) (models.Course, error) {
	c = normalizeCourse(c)
	if err := s.Repo.Update(ctx, c); err != nil {
		return models.Course{}, err
	}
	s.invalidate(ctx)
	utils.LogEvent(ctx, "course", "update", "course updated", zap.Int64("course_id", c.ID))
	return c, nil
}

func (s CourseService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	utils.LogEvent(ctx, "course", "delete", "course deleted", zap.Int64("course_id", id))
	return nil
}

func (s CourseService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return 5 * time.Minute
}

// listKey returns "" when caching is off or the version cannot be read.
func (s CourseService) listKey(ctx context.Context, f models.CourseFilter, p domain.Pagination) string {
	if s.Cache == nil {
		return ""
	}
	version := "0"
	if raw, ok := s.Cache.Get(ctx, courseVersionKey); ok {
		version = string(raw)
	}
	return fmt.Sprintf("courses:v%s:q=%s:c=%s:h=%t:p=%d:l=%d",
		version, strings.ToLower(strings.TrimSpace(f.Query)), strings.ToLower(strings.TrimSpace(f.Category)),
		f.IncludeHidden, p.Page, p.Limit)
}

func (s CourseService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if _, err := s.Cache.Incr(ctx, courseVersionKey); err != nil {
		utils.LogWarn(ctx, "course", "cache", "catalog version bump failed", err)
	}
}

func normalizeCourse(c models.Course) models.Course {
	c.Title = utils.NormalizeSpace(c.Title)
	if strings.TrimSpace(c.Slug) == "" {
		c.Slug = utils.Slugify(c.Title)
	} else {
		c.Slug = utils.Slugify(c.Slug)
	}
	c.Category = strings.TrimSpace(c.Category)
	c.Instructor = utils.NormalizeSpace(c.Instructor)
	return c
}
