// Package session keeps the per-conversation "reservation already made" flag
// in Redis, keyed by the client's session id. This replaces ambient mutable
// state: the flag is read before the commit and set after the first success,
// so a second well-formed reservation block in the same session never writes
// a second booking.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"obsidian-club/internal/logger"
)

type Store struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *logger.Logger
}

func NewStore(client *redis.Client, ttl time.Duration, log *logger.Logger) *Store {
	return &Store{Client: client, TTL: ttl, Logger: log}
}

func key(sessionID string) string {
	return "chat_session:" + sessionID + ":reserved"
}

// Reserved reports whether this session already committed a reservation.
// A Redis failure degrades open (not reserved) and is logged: a lost flag
// risks one duplicate booking, which staff resolve, while a closed failure
// would block every legitimate booking.
func (s *Store) Reserved(ctx context.Context, sessionID string) bool {
	if sessionID == "" {
		return false
	}

	_, err := s.Client.Get(ctx, key(sessionID)).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		s.Logger.Error("SESSION", fmt.Sprintf("Failed to read session flag for %s: %v", sessionID, err))
		return false
	}
	return true
}

// MarkReserved sets the flag after the first successful commit. Sessions
// expire with the TTL; a guest coming back days later may book again.
func (s *Store) MarkReserved(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}

	if err := s.Client.Set(ctx, key(sessionID), "1", s.TTL).Err(); err != nil {
		s.Logger.Error("SESSION", fmt.Sprintf("Failed to set session flag for %s: %v", sessionID, err))
	}
}
