// Package redis provides shared cache and rate-limit state on a Redis server
// using github.com/redis/go-redis/v9.
//
// Cache entries are plain string keys with a server-side TTL. Counters for
// cache stats live in one hash; rate-limit windows are INCR counters whose
// key embeds the aligned window start and expire with the window.
package redis
