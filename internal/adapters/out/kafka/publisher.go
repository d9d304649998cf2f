// Package kafka publishes delivery events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/ports"

	"github.com/IBM/sarama"
)

const DefaultTopic = "delivery-events"

// Message is the JSON document written for every delivery event.
type Message struct {
	EventID        string        `json:"eventId"`
	Type           string        `json:"type"`
	DeliveryID     string        `json:"deliveryId"`
	Status         string        `json:"status"`
	PreviousStatus string        `json:"previousStatus,omitempty"`
	DriverID       string        `json:"driverId,omitempty"`
	DriverName     string        `json:"driverName,omitempty"`
	ClientID       string        `json:"clientId,omitempty"`
	Address        string        `json:"deliveryAddress"`
	Items          []MessageItem `json:"items"`
	OccurredAt     time.Time     `json:"occurredAt"`
}

type MessageItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName,omitempty"`
	Quantity    int    `json:"quantity"`
}

var _ ports.Notifier = (*Publisher)(nil)

// Publisher writes delivery events through a synchronous producer, keyed by
// delivery id so the events of one delivery stay ordered within a partition.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisher connects to brokers. It returns nil, nil when no brokers are
// configured.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Idempotent = true
	cfg.Net.MaxOpenRequests = 1
	cfg.Version = sarama.V2_8_0_0

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return NewPublisherWithProducer(producer, topic), nil
}

func NewPublisherWithProducer(producer sarama.SyncProducer, topic string) *Publisher {
	if strings.TrimSpace(topic) == "" {
		topic = DefaultTopic
	}
	return &Publisher{producer: producer, topic: topic}
}

func (p *Publisher) Notify(ctx context.Context, notice ports.DeliveryNotice) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(newMessage(notice))
	if err != nil {
		return err
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(notice.Event.DeliveryID.String()),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(notice.Event.Type)},
			{Key: []byte("event-id"), Value: []byte(notice.Event.ID.String())},
		},
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", notice.Event.Type, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}

func newMessage(notice ports.DeliveryNotice) Message {
	e := notice.Event
	msg := Message{
		EventID:    e.ID.String(),
		Type:       string(e.Type),
		DeliveryID: e.DeliveryID.String(),
		Status:     e.Status.String(),
		DriverName: notice.DriverName,
		OccurredAt: e.OccurredAt.UTC(),
		Items:      []MessageItem{},
	}
	if e.PreviousStatus != delivery.Unknown {
		msg.PreviousStatus = e.PreviousStatus.String()
	}
	if e.DriverID != nil {
		msg.DriverID = e.DriverID.String()
	}
	if notice.Client != nil {
		msg.ClientID = notice.Client.ID().String()
	}
	if d := notice.Delivery; d != nil {
		msg.Address = d.Details().DeliveryAddress()
		for _, item := range d.Items() {
			mi := MessageItem{ProductID: item.ProductID().String(), Quantity: item.Quantity()}
			if prod, ok := notice.Products[item.ProductID()]; ok && prod != nil {
				mi.ProductName = prod.Name()
			}
			msg.Items = append(msg.Items, mi)
		}
	}
	return msg
}
