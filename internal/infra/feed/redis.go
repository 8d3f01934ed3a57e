package feed

import (
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/smilehub/clinic-booking/internal/domain"
)

const subscriptionBuffer = 64

// Publisher публикует события изменения записей в канал Redis
type Publisher struct {
	client  redis.UniversalClient
	channel string
	metrics Metrics
	logger  Logger
}

// NewPublisher создает издателя событий
func NewPublisher(client redis.UniversalClient, channel string, metrics Metrics, logger Logger) *Publisher {
	return &Publisher{
		client:  client,
		channel: channel,
		metrics: metrics,
		logger:  logger,
	}
}

// Publish отправляет событие всем подписчикам канала
func (p *Publisher) Publish(ctx context.Context, event domain.ChangeEvent) error {
	payload, err := json.Marshal(toMessage(event))
	if err != nil {
		p.metrics.IncFeedEvent(string(event.Type), "error")
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		p.metrics.IncFeedEvent(string(event.Type), "error")
		return fmt.Errorf("%w: channel=%s: %v", ErrPublish, p.channel, err)
	}

	p.metrics.IncFeedEvent(string(event.Type), "ok")
	return nil
}

// Subscriber создает подписки на канал событий
type Subscriber struct {
	client  redis.UniversalClient
	channel string
	logger  Logger
}

// NewSubscriber создает подписчика
func NewSubscriber(client redis.UniversalClient, channel string, logger Logger) *Subscriber {
	return &Subscriber{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

// Subscription одна подписка на канал событий
type Subscription struct {
	pubsub *redis.PubSub
	events chan domain.ChangeEvent
	once   sync.Once
	done   chan struct{}
}

// Subscribe подписывается на канал и ждет подтверждения от Redis.
// События доступны через Events() до вызова Close или отмены ctx
func (s *Subscriber) Subscribe(ctx context.Context) (*Subscription, error) {
	pubsub := s.client.Subscribe(ctx, s.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("%w: channel=%s: %v", ErrSubscribe, s.channel, err)
	}

	sub := &Subscription{
		pubsub: pubsub,
		events: make(chan domain.ChangeEvent, subscriptionBuffer),
		done:   make(chan struct{}),
	}
	go sub.relay(ctx, s.logger)

	return sub, nil
}

func (s *Subscription) relay(ctx context.Context, logger Logger) {
	defer close(s.events)

	messages := s.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var m message
			if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
				logger.Warn("Feed: skipping malformed event on %s: %v", msg.Channel, fmt.Errorf("%w: %v", ErrDecode, err))
				continue
			}
			select {
			case s.events <- m.toDomain():
			case <-ctx.Done():
				return
			case <-s.done:
				return
			}
		}
	}
}

// Events канал событий подписки. Закрывается после Close
func (s *Subscription) Events() <-chan domain.ChangeEvent {
	return s.events
}

// Close отписывается от канала
func (s *Subscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})
	return err
}

// NopPublisher используется, когда Redis выключен
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.ChangeEvent) error {
	return nil
}
