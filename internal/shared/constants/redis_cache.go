package constants

import "time"

// Cache key prefixes. Every key carries the app prefix so a shared Redis
// instance can be flushed per application.
const (
	CacheKeyPrefix = "streakconnect"

	CacheKeyLiveDetail   = CacheKeyPrefix + ":lives:detail:"
	CacheKeyLiveList     = CacheKeyPrefix + ":lives:list"
	CacheKeyScoreList    = CacheKeyPrefix + ":scores:list"
	CacheKeyMediaList    = CacheKeyPrefix + ":medias:list"
	CacheKeyAnnouncement = CacheKeyPrefix + ":announcements:"

	// Invalidation patterns
	PatternInvalidateLiveAll  = CacheKeyPrefix + ":lives:*"
	PatternInvalidateScoreAll = CacheKeyPrefix + ":scores:*"
	PatternInvalidateMediaAll = CacheKeyPrefix + ":medias:*"

	// Advisory remaining-stock gauge, maintained by the tickets module
	KeyLiveStockGauge = CacheKeyPrefix + ":lives:stock:"

	// LINE login state nonce
	KeyLoginState = CacheKeyPrefix + ":auth:state:"
)

// Cache TTLs
const (
	TTLLiveDetail   = 5 * time.Minute
	TTLLiveList     = 2 * time.Minute
	TTLScoreList    = 10 * time.Minute
	TTLMediaList    = 10 * time.Minute
	TTLAnnouncement = 1 * time.Minute
)

// BuildLiveDetailKey builds the cache key for a single live
func BuildLiveDetailKey(liveID string) string {
	return CacheKeyLiveDetail + liveID
}

// BuildLiveStockKey builds the advisory stock gauge key for a live
func BuildLiveStockKey(liveID string) string {
	return KeyLiveStockGauge + liveID
}

// BuildLoginStateKey builds the Redis key holding a LINE login state nonce
func BuildLoginStateKey(state string) string {
	return KeyLoginState + state
}

// BuildAnnouncementKey builds the per-member announcement cache key
func BuildAnnouncementKey(memberID string) string {
	return CacheKeyAnnouncement + memberID
}
