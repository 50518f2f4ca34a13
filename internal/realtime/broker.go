package realtime

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const channelPrefix = "notifications:"

const (
	EventTaskAssigned  = "task_assigned"
	EventTaskUpdated   = "task_updated"
	EventFeedbackAdded = "feedback_added"
)

type Event struct {
	Type string    `json:"type"`
	Data any       `json:"data"`
	At   time.Time `json:"at"`
}

// Broker fans task events out to account channels, through Redis when configured.
type Broker struct {
	rdb *redis.Client
	hub *Hub
	log logrus.FieldLogger
}

func NewBroker(rdb *redis.Client, hub *Hub, log logrus.FieldLogger) *Broker {
	return &Broker{rdb: rdb, hub: hub, log: log}
}

func Channel(accountID uuid.UUID) string {
	return channelPrefix + accountID.String()
}

// Publish never fails the caller; delivery problems are logged.
func (b *Broker) Publish(ctx context.Context, accountID uuid.UUID, eventType string, data any) {
	payload, err := json.Marshal(Event{Type: eventType, Data: data, At: time.Now().UTC()})
	if err != nil {
		b.log.WithError(err).WithField("event", eventType).Error("marshal realtime event")
		return
	}

	if b.rdb != nil {
		err := b.rdb.Publish(ctx, Channel(accountID), payload).Err()
		if err == nil {
			return
		}
		b.log.WithError(err).WithField("account", accountID).Warn("redis publish failed, delivering locally")
	}
	b.hub.SendToUser(accountID, payload)
}

// Run forwards Redis notifications to local clients until ctx is done.
func (b *Broker) Run(ctx context.Context) {
	if b.rdb == nil {
		return
	}

	sub := b.rdb.PSubscribe(ctx, channelPrefix+"*")
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			id, err := uuid.Parse(strings.TrimPrefix(msg.Channel, channelPrefix))
			if err != nil {
				b.log.WithField("channel", msg.Channel).Warn("ignoring notification on unexpected channel")
				continue
			}
			b.hub.SendToUser(id, []byte(msg.Payload))
		}
	}
}
