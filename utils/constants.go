package utils

import (
	"time"
)

// Feed window constants
const (
	// GlobalFeedLimit bounds the global intelligence feed to the most recent rows
	GlobalFeedLimit = 20

	// CallListLimit bounds call listings to the most recent rows
	CallListLimit = 50

	// SocialFeedPageSize bounds a contact's social activity feed per request
	SocialFeedPageSize = 100
)

// Scheduler constants
const (
	// DefaultLookaheadWindow is how far ahead the occasion scheduler searches for due dates
	DefaultLookaheadWindow = 24 * time.Hour

	// DefaultSendTime is used when a date record carries no explicit send time
	DefaultSendTime = "09:00"
)

// Cache constants
const (
	// GlobalFeedCacheKey is the redis key suffix for the cached global news feed
	GlobalFeedCacheKey = "intelligence:global_feed"

	// OccasionEnqueuedKeyPrefix marks an occasion as already handed to delivery for a given day
	OccasionEnqueuedKeyPrefix = "occasion:enqueued"
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)
