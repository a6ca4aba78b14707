package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/course-marketplace/internal/domain"
)

const (
	courseListKey   = "courses:all"
	courseKeyPrefix = "courses:"
)

// CourseCache is a read-through Redis cache for the public course endpoints.
// All methods are best-effort: a cache failure degrades to the store and is
// logged at debug level only. A nil cache behaves as a permanent miss.
type CourseCache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewCourseCache builds a cache over the shared Redis handle.
func NewCourseCache(r *Redis, logger *zap.Logger, ttl time.Duration) *CourseCache {
	if r == nil || r.Client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CourseCache{client: r.Client, logger: logger, ttl: ttl}
}

// GetList returns the cached public course list, if present.
func (c *CourseCache) GetList(ctx context.Context) ([]domain.Course, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, courseListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("course list cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var courses []domain.Course
	if err := json.Unmarshal(raw, &courses); err != nil {
		c.logger.Debug("course list cache decode failed", zap.Error(err))
		return nil, false
	}
	return courses, true
}

// SetList stores the public course list.
func (c *CourseCache) SetList(ctx context.Context, courses []domain.Course) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(courses)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, courseListKey, raw, c.ttl).Err(); err != nil {
		c.logger.Debug("course list cache write failed", zap.Error(err))
	}
}

// GetCourse returns a cached course detail, if present.
func (c *CourseCache) GetCourse(ctx context.Context, id string) (*domain.Course, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, courseKeyPrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("course cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var course domain.Course
	if err := json.Unmarshal(raw, &course); err != nil {
		return nil, false
	}
	return &course, true
}

// SetCourse stores a course detail.
func (c *CourseCache) SetCourse(ctx context.Context, course *domain.Course) {
	if c == nil || course == nil {
		return
	}
	raw, err := json.Marshal(course)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, courseKeyPrefix+course.ID, raw, c.ttl).Err(); err != nil {
		c.logger.Debug("course cache write failed", zap.Error(err))
	}
}

// Invalidate drops the list key and the detail key for the given course.
func (c *CourseCache) Invalidate(ctx context.Context, id string) {
	if c == nil {
		return
	}
	keys := []string{courseListKey}
	if id != "" {
		keys = append(keys, courseKeyPrefix+id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Debug("course cache invalidation failed", zap.Error(err))
	}
}
