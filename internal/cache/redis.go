package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ai-school/internal/models"
	"ai-school/internal/models/config"
	"ai-school/internal/service"

	"github.com/redis/go-redis/v9"
)

const (
	coursesPrefix = "courses:list:"
	coursesTTL    = 10 * time.Minute
)

// NewRedisClient возвращает клиент или nil, если REDIS_ADDR не задан
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// CourseCache хранит списки курсов в Redis на 10 минут
type CourseCache struct {
	client *redis.Client
}

// NewCourseCache без клиента возвращает no-op кэш
func NewCourseCache(client *redis.Client) service.CourseCache {
	if client == nil {
		return NoopCache{}
	}
	return &CourseCache{client: client}
}

func (c *CourseCache) GetCourses(ctx context.Context, key string) ([]*models.Course, bool, error) {
	val, err := c.client.Get(ctx, coursesPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var courses []*models.Course
	if err := json.Unmarshal(val, &courses); err != nil {
		// битая запись - считаем промахом
		return nil, false, nil
	}
	return courses, true, nil
}

func (c *CourseCache) SetCourses(ctx context.Context, key string, courses []*models.Course) error {
	data, err := json.Marshal(courses)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, coursesPrefix+key, data, coursesTTL).Err()
}

// Invalidate удаляет все закэшированные списки курсов
func (c *CourseCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, coursesPrefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// NoopCache - кэш без хранения, когда Redis не настроен
type NoopCache struct{}

func (NoopCache) GetCourses(context.Context, string) ([]*models.Course, bool, error) {
	return nil, false, nil
}

func (NoopCache) SetCourses(context.Context, string, []*models.Course) error { return nil }

func (NoopCache) Invalidate(context.Context) error { return nil }
