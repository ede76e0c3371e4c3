package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	postKeyPrefix    = "post:%d"
	postsListKey     = "posts:all"
	profileKeyPrefix = "profile:handle:%s"
	profilesListKey  = "profiles:all"
)

const (
	// PostTTL bounds staleness of an anonymously-read post.
	PostTTL = 5 * time.Minute
	// ProfileTTL bounds staleness of a profile read by handle.
	ProfileTTL = 5 * time.Minute
	// ListTTL bounds staleness of the all-profiles listing.
	ListTTL = time.Minute
)

// PostKey returns the cache key for a post.
func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

// PostsListKey returns the cache key for the feed listing.
func PostsListKey() string {
	return postsListKey
}

// ProfileHandleKey returns the cache key for a profile read by handle.
func ProfileHandleKey(handle string) string {
	return fmt.Sprintf(profileKeyPrefix, handle)
}

// ProfilesListKey returns the cache key for the all-profiles listing.
func ProfilesListKey() string {
	return profilesListKey
}

// Invalidate drops a key. No-op without a Redis client.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePost drops a post's cache entry and the feed listing.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, postsListKey)
}

// InvalidateProfile drops a profile's handle entry and the listing.
func InvalidateProfile(ctx context.Context, handle string) {
	Invalidate(ctx, ProfileHandleKey(handle))
	Invalidate(ctx, profilesListKey)
}
