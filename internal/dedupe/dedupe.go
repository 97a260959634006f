package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent read-heavy queries. Using a centralized singleflight.Group
// ensures that only one database query runs for a given key while other
// callers wait for the result.

import "golang.org/x/sync/singleflight"

// LeaderboardGroup deduplicates leaderboard queries keyed by the
// requested limit (e.g. "top:10").
var LeaderboardGroup singleflight.Group

// CatalogGroup deduplicates card catalog reads keyed by a constant
// ("cards") since the catalog is the same for every caller.
var CatalogGroup singleflight.Group
