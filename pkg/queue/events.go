package queue

import "github.com/ThreeDotsLabs/watermill/message"

// Typed publish/parse pairs per event family. Publishers are handed in so
// the service layer decides whether messaging is on at all.

// PublishEntityEvent publishes a created/updated/deleted event for one
// entity.
func PublishEntityEvent(pub message.Publisher, topic string, payload EntityEventPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(topic, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(topic, msg)
}

// ParseEntityEvent decodes an entity event envelope.
func ParseEntityEvent(msg *message.Message) (Message[EntityEventPayload], error) {
	return ParseWatermillMessage[EntityEventPayload](msg)
}

// PublishMembershipEvent publishes a gallery membership change.
func PublishMembershipEvent(pub message.Publisher, topic string, payload MembershipEventPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(topic, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(topic, msg)
}

// ParseMembershipEvent decodes a membership event envelope.
func ParseMembershipEvent(msg *message.Message) (Message[MembershipEventPayload], error) {
	return ParseWatermillMessage[MembershipEventPayload](msg)
}

// PublishTimelineEvent publishes a project timeline change.
func PublishTimelineEvent(pub message.Publisher, topic string, payload TimelineEventPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(topic, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(topic, msg)
}

// ParseTimelineEvent decodes a timeline event envelope.
func ParseTimelineEvent(msg *message.Message) (Message[TimelineEventPayload], error) {
	return ParseWatermillMessage[TimelineEventPayload](msg)
}

// PublishBlobEvent publishes a blob stored/deleted event.
func PublishBlobEvent(pub message.Publisher, topic string, payload BlobEventPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(topic, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(topic, msg)
}

// ParseBlobEvent decodes a blob event envelope.
func ParseBlobEvent(msg *message.Message) (Message[BlobEventPayload], error) {
	return ParseWatermillMessage[BlobEventPayload](msg)
}

// PublishSweepEvent publishes an orphan sweep summary.
func PublishSweepEvent(pub message.Publisher, payload SweepEventPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicBlobSwept, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicBlobSwept, msg)
}

// ParseSweepEvent decodes a sweep summary envelope.
func ParseSweepEvent(msg *message.Message) (Message[SweepEventPayload], error) {
	return ParseWatermillMessage[SweepEventPayload](msg)
}

// PublishReorderEvent publishes an ordering domain rewrite.
func PublishReorderEvent(pub message.Publisher, payload ReorderEventPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicOrderingReordered, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicOrderingReordered, msg)
}

// ParseReorderEvent decodes a reorder event envelope.
func ParseReorderEvent(msg *message.Message) (Message[ReorderEventPayload], error) {
	return ParseWatermillMessage[ReorderEventPayload](msg)
}
