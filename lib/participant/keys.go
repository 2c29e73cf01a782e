package participant

import "fmt"

// Storage key layout. The exact patterns are load-bearing: every consumer
// sharing a backing store must derive identical keys from identical
// configuration, so all key construction is centralized here.
const (
	// DefaultPrefix is the storage key prefix used when no prefix is configured.
	DefaultPrefix = "participants_id"

	// SingleIDPrefix is the conventional prefix for deployments that share one
	// identifier across all applications instead of one per experiment family.
	SingleIDPrefix = "participant_id"

	fieldBrowserID = "browser_id"
	fieldCreatedAt = "created_at"
	fieldUpdatedAt = "updated_at"
)

// BrowserIDKey returns the storage key holding the identifier itself.
func BrowserIDKey(prefix string) string {
	return fmt.Sprintf("%s.%s", prefix, fieldBrowserID)
}

// CreatedAtKey returns the storage key holding the creation timestamp.
func CreatedAtKey(prefix string) string {
	return fmt.Sprintf("%s.%s", prefix, fieldCreatedAt)
}

// UpdatedAtKey returns the storage key holding the update timestamp.
func UpdatedAtKey(prefix string) string {
	return fmt.Sprintf("%s.%s", prefix, fieldUpdatedAt)
}

// AttributeKey returns the storage key for an attribute field, namespaced by
// prefix and application name so unrelated consumers of the same backing
// store never collide.
func AttributeKey(prefix, appName, field string) string {
	return fmt.Sprintf("%s.%s.%s", prefix, appName, field)
}
