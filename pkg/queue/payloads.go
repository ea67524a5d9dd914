package queue

import "time"

// EntityRef identifies one entity graph node.
type EntityRef struct {
	// Kind is the entity kind: artwork, gallery, project, projectUpdate,
	// reference, componentTag.
	Kind string `json:"kind"`
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// BlobRef identifies one blob store entry.
type BlobRef struct {
	Category string `json:"category"`
	Key      string `json:"key"`
	Size     int64  `json:"size,omitempty"`
}

// EntityEventPayload covers the plain created/updated/deleted events.
type EntityEventPayload struct {
	Entity EntityRef `json:"entity"`
}

// MembershipEventPayload covers gallery membership changes.
type MembershipEventPayload struct {
	Gallery EntityRef `json:"gallery"`
	Artwork EntityRef `json:"artwork"`
}

// TimelineEventPayload covers project update additions and removals.
type TimelineEventPayload struct {
	Project EntityRef `json:"project"`
	Update  EntityRef `json:"update"`
	// Date is the update's timeline date, not its insertion time.
	Date time.Time `json:"date"`
	// LastActivityDate is the project's recomputed activity date after the
	// change.
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`
}

// BlobEventPayload covers blob store writes and deletes.
type BlobEventPayload struct {
	Blob BlobRef `json:"blob"`
	// Owner is the entity the blob belongs to, when known.
	Owner *EntityRef `json:"owner,omitempty"`
}

// SweepEventPayload summarises one orphan sweep run.
type SweepEventPayload struct {
	Scanned int   `json:"scanned"`
	Orphans int   `json:"orphans"`
	Deleted int   `json:"deleted"`
	Bytes   int64 `json:"bytes"`
	DryRun  bool  `json:"dry_run"`
}

// ReorderEventPayload covers a sort-order rewrite within one ordering
// domain.
type ReorderEventPayload struct {
	// Domain is "galleries" or "gallery:<id>".
	Domain    string `json:"domain"`
	MovedID   string `json:"moved_id"`
	FromIndex int    `json:"from_index"`
	ToIndex   int    `json:"to_index"`
	// Size is the number of members re-ranked.
	Size int `json:"size"`
}
