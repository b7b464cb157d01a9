package resumes

import "time"

// Contact holds the recognized contact sub-fields. Pointers preserve the
// distinction between a missing field and an empty one, so null survives
// persistence and rendering.
type Contact struct {
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	LinkedIn *string `json:"linkedin"`
}

// Resume is the canonical structured record recovered from a provider
// response. Every field is always present after normalization; collection
// entries may be plain strings or structured sub-objects (the schema is
// advisory, not enforced).
type Resume struct {
	Name           string            `json:"name"`
	Contact        Contact           `json:"contact"`
	Skills         []any             `json:"skills"`
	Education      []any             `json:"education"`
	Experience     []any             `json:"experience"`
	Projects       []any             `json:"projects"`
	Certifications []any             `json:"certifications"`
	Preferences    map[string]string `json:"preferences"`
}

// Record is a persisted resume with store-assigned identity and timestamps.
// UpdatedAt equals CreatedAt until the record is mutated.
type Record struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Resume    Resume    `json:"resume"`
	Markdown  string    `json:"markdown"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
