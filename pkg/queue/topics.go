package queue

// Topic naming: av.<domain>.<action>. Domains follow the entity graph plus
// the blob store and the ordering subsystem; actions are past-tense facts.

const (
	// Artwork domain.
	TopicArtworkCreated = "av.artwork.created"
	TopicArtworkUpdated = "av.artwork.updated"
	TopicArtworkDeleted = "av.artwork.deleted"

	// Gallery domain, including membership changes.
	TopicGalleryCreated       = "av.gallery.created"
	TopicGalleryUpdated       = "av.gallery.updated"
	TopicGalleryDeleted       = "av.gallery.deleted"
	TopicGalleryMemberAdded   = "av.gallery.member.added"
	TopicGalleryMemberRemoved = "av.gallery.member.removed"

	// Project domain, including timeline updates.
	TopicProjectCreated       = "av.project.created"
	TopicProjectUpdated       = "av.project.updated"
	TopicProjectDeleted       = "av.project.deleted"
	TopicProjectUpdateAdded   = "av.project.update.added"
	TopicProjectUpdateRemoved = "av.project.update.removed"

	// Reference and component tag domains.
	TopicReferenceAdded   = "av.reference.added"
	TopicReferenceRemoved = "av.reference.removed"
	TopicTagCreated       = "av.tag.created"
	TopicTagDeleted       = "av.tag.deleted"

	// Blob store domain.
	TopicBlobStored  = "av.blob.stored"
	TopicBlobDeleted = "av.blob.deleted"
	TopicBlobSwept   = "av.blob.swept"

	// Ordering domain.
	TopicOrderingReordered = "av.ordering.reordered"
)
