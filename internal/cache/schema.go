package cache

// SQL schemas for cache tables
// All cache tables use "cache_key" as the primary key column for consistency

// Cache table names
const (
	GoogleBooksCacheTable = "googlebooks_cache"
	RationaleCacheTable   = "rationale_cache"
)

// GoogleBooksCacheSchema defines the schema for Google Books cover lookups
const GoogleBooksCacheSchema = `
CREATE TABLE IF NOT EXISTS googlebooks_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_googlebooks_cached_at ON googlebooks_cache(cached_at);
`

// RationaleCacheSchema defines the schema for librarian rationale responses,
// keyed on the query plus the path's book ids so identical requests reuse
// the earlier answer instead of another API round trip
const RationaleCacheSchema = `
CREATE TABLE IF NOT EXISTS rationale_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_rationale_cached_at ON rationale_cache(cached_at);
`

// AllCacheSchemas contains all cache table schemas for easy initialization
var AllCacheSchemas = []string{
	GoogleBooksCacheSchema,
	RationaleCacheSchema,
}

// ValidCacheTableNames is the whitelist of allowed cache table names
// Used to prevent SQL injection when interpolating table names
var ValidCacheTableNames = map[string]bool{
	GoogleBooksCacheTable: true,
	RationaleCacheTable:   true,
}
