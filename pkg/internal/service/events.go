package service

import (
	"time"

	"github.com/artvault/artvault/pkg/configs"
	"github.com/artvault/artvault/pkg/internal/storage/mq"
	nlog "github.com/artvault/artvault/pkg/log"
	"github.com/artvault/artvault/pkg/queue"
)

const eventProducer = "artvault"

// notifier publishes change-notification events after successful mutations.
// Publishing is fire-and-forget: correctness never depends on a broker, so a
// publish failure is logged and forgotten. A nil MQ client (messaging
// disabled) turns every method into a no-op.
type notifier struct {
	mqc *mq.Client
	cfg configs.EventsConfig
}

func newNotifier(mqc *mq.Client) *notifier {
	return &notifier{mqc: mqc, cfg: configs.GetConfig().Events}
}

func (n *notifier) enabled(on bool) bool {
	return n != nil && n.mqc != nil && n.cfg.Enabled && on
}

func logPublishErr(topic string, err error) {
	if err != nil {
		nlog.Logger().Warn().Err(err).Str("topic", topic).Msg("event publish failed")
	}
}

func (n *notifier) entity(topic string, on bool, kind, id, name string) {
	if !n.enabled(on) {
		return
	}

	logPublishErr(topic, queue.PublishEntityEvent(n.mqc.Publisher(), topic, queue.EntityEventPayload{
		Entity: queue.EntityRef{Kind: kind, ID: id, Name: name},
	}, queue.WithProducer(eventProducer)))
}

func (n *notifier) membership(topic string, on bool, galleryID, galleryName, artworkID, artworkName string) {
	if !n.enabled(on) {
		return
	}

	logPublishErr(topic, queue.PublishMembershipEvent(n.mqc.Publisher(), topic, queue.MembershipEventPayload{
		Gallery: queue.EntityRef{Kind: "gallery", ID: galleryID, Name: galleryName},
		Artwork: queue.EntityRef{Kind: "artwork", ID: artworkID, Name: artworkName},
	}, queue.WithProducer(eventProducer)))
}

func (n *notifier) timeline(topic string, on bool, projectID, projectName, updateID string, date time.Time, lastActivity *time.Time) {
	if !n.enabled(on) {
		return
	}

	logPublishErr(topic, queue.PublishTimelineEvent(n.mqc.Publisher(), topic, queue.TimelineEventPayload{
		Project:          queue.EntityRef{Kind: "project", ID: projectID, Name: projectName},
		Update:           queue.EntityRef{Kind: "projectUpdate", ID: updateID},
		Date:             date,
		LastActivityDate: lastActivity,
	}, queue.WithProducer(eventProducer)))
}

func (n *notifier) blob(topic string, on bool, category, key string, owner *queue.EntityRef) {
	if !n.enabled(on) {
		return
	}

	logPublishErr(topic, queue.PublishBlobEvent(n.mqc.Publisher(), topic, queue.BlobEventPayload{
		Blob:  queue.BlobRef{Category: category, Key: key},
		Owner: owner,
	}, queue.WithProducer(eventProducer)))
}

func (n *notifier) reorder(on bool, domain, movedID string, fromIndex, toIndex, size int) {
	if !n.enabled(on) {
		return
	}

	logPublishErr(queue.TopicOrderingReordered, queue.PublishReorderEvent(n.mqc.Publisher(), queue.ReorderEventPayload{
		Domain:    domain,
		MovedID:   movedID,
		FromIndex: fromIndex,
		ToIndex:   toIndex,
		Size:      size,
	}, queue.WithProducer(eventProducer)))
}
