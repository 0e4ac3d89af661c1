package video

import (
	"context"
	"fmt"

	"ai-school/internal/models"
	"ai-school/internal/service"

	"github.com/kkdai/youtube/v2"
)

// YouTubeResolver достает название и длительность ролика YouTube
type YouTubeResolver struct {
	client youtube.Client
}

func NewYouTubeResolver() service.VideoResolver {
	return &YouTubeResolver{
		client: youtube.Client{},
	}
}

func (r *YouTubeResolver) Resolve(ctx context.Context, url string) (*models.VideoInfo, error) {
	id, err := youtube.ExtractVideoID(url)
	if err != nil {
		return nil, fmt.Errorf("not a youtube link %q: %w", url, err)
	}

	v, err := r.client.GetVideoContext(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get video info: %w", err)
	}

	return &models.VideoInfo{
		Title:    v.Title,
		Duration: v.Duration,
	}, nil
}
