package resumes

import "context"

// Repo defines persistence operations for resume records. Insert assigns a
// fresh identity and timestamps at write time and never deduplicates:
// repeated submissions from the same owner become separate records. Dedup
// by owner, if ever wanted, belongs here as an explicit upsert policy.
type Repo interface {
	Insert(ctx context.Context, owner string, r Resume, markdown string) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
}
