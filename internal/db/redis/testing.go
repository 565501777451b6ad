package redis

import "github.com/redis/rueidis"

// NewStoreForTest wraps an injected rueidis client (typically a mock).
func NewStoreForTest(client rueidis.Client) *Store {
	return &Store{client: client}
}
