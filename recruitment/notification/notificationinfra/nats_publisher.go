package notificationinfra

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/recruitment/notification"
	"github.com/nats-io/nats.go"
)

// DefaultSubject is where created notifications are published
const DefaultSubject = "notifications.created"

type natsPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSPublisher connects to url and publishes each notification as JSON
func NewNATSPublisher(url, subject string, timeout time.Duration) (notification.Publisher, error) {
	if subject == "" {
		subject = DefaultSubject
	}

	conn, err := nats.Connect(url,
		nats.Name("jobboard-notifications"),
		nats.Timeout(timeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, errx.Wrap(err, "connecting to NATS", errx.TypeExternal)
	}

	return &natsPublisher{
		conn:    conn,
		subject: subject,
	}, nil
}

func (p *natsPublisher) Publish(ctx context.Context, n *notification.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return errx.Wrap(err, "marshaling notification", errx.TypeInternal)
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		return errx.Wrap(err, "publishing to NATS", errx.TypeExternal)
	}

	logx.Debugf("Published notification %s to %s", n.ID, p.subject)
	return nil
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		p.conn.Drain()
	}
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event
func NewNoopPublisher() notification.Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, *notification.Notification) error { return nil }
func (noopPublisher) Close()                                                    {}
