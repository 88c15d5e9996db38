package changefeed

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/ports"
)

const natsSubjectPrefix = "dashboard.changes."

// NATSFeed carries change events over core NATS subjects named dashboard.changes.<kind>.
type NATSFeed struct {
	nc  *nats.Conn
	log zerolog.Logger
}

func NewNATSFeed(nc *nats.Conn, log zerolog.Logger) *NATSFeed {
	return &NATSFeed{nc: nc, log: log.With().Str("feed", "nats").Logger()}
}

// ConnectNATS dials url with reconnects enabled for the life of the process.
func ConnectNATS(url string, log zerolog.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("response-dashboard"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return nc, nil
}

func natsSubject(kind domain.Kind) string {
	return natsSubjectPrefix + string(kind)
}

func (f *NATSFeed) Subscribe(_ context.Context, kind domain.Kind) (ports.Subscription, error) {
	var ns *nats.Subscription
	sub := newSubscription(kind, func() error { return ns.Unsubscribe() })

	ns, err := f.nc.Subscribe(natsSubject(kind), func(*nats.Msg) {
		sub.deliver(ports.ChangeEvent{Kind: kind, At: time.Now().UTC()})
	})
	if err != nil {
		return nil, fmt.Errorf("nats subscribe %s: %w", kind, err)
	}
	return sub, nil
}

func (f *NATSFeed) Publish(_ context.Context, e ports.ChangeEvent) error {
	if err := f.nc.Publish(natsSubject(e.Kind), []byte(e.At.UTC().Format(time.RFC3339Nano))); err != nil {
		return fmt.Errorf("nats publish %s: %w", e.Kind, err)
	}
	return nil
}
