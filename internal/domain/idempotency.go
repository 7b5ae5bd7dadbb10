package domain

import (
	"strconv"
	"strings"
	"time"
)

// Idempotency represents a recorded result of a previously processed request,
// keyed by (user_id, scope, key). Scope is the route that produced it. For a
// bulk dog import the created dog ids are remembered so a retry can replay the
// original response without inserting the dogs again.
type Idempotency struct {
	ID        string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	UserID    string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_scope_key,priority:1"`
	Scope     string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_scope_key,priority:2"`
	Key       string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_scope_key,priority:3"`
	DogIDs    string    `gorm:"type:TEXT NOT NULL;default:''"`
	Status    int       `gorm:"type:INTEGER NOT NULL"`
	CreatedAt time.Time `gorm:"type:TIMESTAMP NOT NULL;autoCreateTime"`
	ExpiresAt time.Time `gorm:"type:TIMESTAMP NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }

// JoinIDs encodes ids as a comma-joined list for Idempotency.DogIDs.
func JoinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// ParseIDs decodes Idempotency.DogIDs. Malformed entries are skipped.
func (r Idempotency) ParseIDs() []int64 {
	if r.DogIDs == "" {
		return nil
	}
	parts := strings.Split(r.DogIDs, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		if id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64); err == nil {
			out = append(out, id)
		}
	}
	return out
}
