package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	DiverKeyPrefix = "diver:%s"
	SpotKeyPrefix  = "spot:%s"
	PostKeyPrefix  = "post:%s"
)

const (
	DiverTTL = 5 * time.Minute
	SpotTTL  = 10 * time.Minute
	PostTTL  = 30 * time.Minute
)

func DiverKey(diverID string) string {
	return fmt.Sprintf(DiverKeyPrefix, diverID)
}

func SpotKey(spotID string) string {
	return fmt.Sprintf(SpotKeyPrefix, spotID)
}

func PostKey(postID string) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateDiver(ctx context.Context, diverID string) {
	Invalidate(ctx, DiverKey(diverID))
}

func InvalidateSpot(ctx context.Context, spotID string) {
	Invalidate(ctx, SpotKey(spotID))
}

func InvalidatePost(ctx context.Context, postID string) {
	Invalidate(ctx, PostKey(postID))
}
