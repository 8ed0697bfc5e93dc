package messenger

import (
	"context"
	"time"

	"hava-checkout/internal/pkg/logger"
)

const HandoffQueue = "checkout.handoff"

// Handoff is one order message ready to be sent through Messenger.
type Handoff struct {
	SessionID string    `json:"session_id"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
}

// Opener hands a deep link to whatever opens it. It is one-way: callers
// never learn whether the link was opened or the message was sent.
type Opener interface {
	Open(ctx context.Context, h Handoff)
}

// LinkOpener leaves opening to the client: the link travels back in the
// API response and the browser opens it in a new tab.
type LinkOpener struct{}

func (LinkOpener) Open(_ context.Context, h Handoff) {
	logger.Info.Printf("Order hand-off ready for session %s (%d bytes)", h.SessionID, len(h.Message))
}

// Publisher is the part of the queue client QueueOpener needs.
type Publisher interface {
	Publish(ctx context.Context, queue string, payload any) error
}

// QueueOpener publishes the hand-off for a downstream notifier. Publish
// failures are logged and dropped.
type QueueOpener struct {
	publisher Publisher
	queue     string
	timeout   time.Duration
}

func NewQueueOpener(publisher Publisher, queue string) *QueueOpener {
	if queue == "" {
		queue = HandoffQueue
	}
	return &QueueOpener{
		publisher: publisher,
		queue:     queue,
		timeout:   5 * time.Second,
	}
}

func (q *QueueOpener) Open(ctx context.Context, h Handoff) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), q.timeout)
	defer cancel()

	if err := q.publisher.Publish(ctx, q.queue, h); err != nil {
		logger.Error.Printf("Failed to publish hand-off for session %s: %v", h.SessionID, err)
		return
	}
	logger.Info.Printf("Published hand-off for session %s to %s", h.SessionID, q.queue)
}
