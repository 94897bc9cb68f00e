package announce

import (
	"context"
	"fmt"
	"net/url"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/mkrogh/bridgeway/pkg/flow"
)

// MQTT topics announcements arrive on.
const (
	TopicNetwork = "gateway/announce"
	TopicAddon   = "gateway/addon"
)

// Listener subscribes to the announcement topics and starts a pairing
// flow for every valid payload. Each announcement is an independent flow
// instance; duplicate and precedence handling happens inside the flow.
type Listener struct {
	client  mqtt.Client
	manager *flow.Manager
}

// NewListener creates a Listener connected to nothing; call Start.
func NewListener(brokerURL string, manager *flow.Manager) (*Listener, error) {
	u, err := url.Parse(brokerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid broker url: %w", err)
	}

	opts := mqtt.NewClientOptions()
	server := u.Host
	switch u.Scheme {
	case "mqtt", "tcp", "":
		server = "tcp://" + server
	case "ssl", "tls":
		server = "ssl://" + server
	case "ws", "wss":
		server = u.Scheme + "://" + server + u.Path
	}
	opts.AddBroker(server)
	opts.SetClientID("bridgeway-" + time.Now().Format("150405.000"))
	if u.User != nil {
		pw, _ := u.User.Password()
		opts.SetUsername(u.User.Username())
		opts.SetPassword(pw)
	}
	opts.OnConnect = func(c mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("MQTT connected")
	}
	opts.OnConnectionLost = func(c mqtt.Client, err error) {
		log.Error().Err(err).Msg("MQTT connection lost")
	}

	return &Listener{
		client:  mqtt.NewClient(opts),
		manager: manager,
	}, nil
}

// Start connects to the broker and subscribes to the announcement topics.
func (l *Listener) Start() error {
	if t := l.client.Connect(); t.Wait() && t.Error() != nil {
		return fmt.Errorf("mqtt connect: %w", t.Error())
	}
	if t := l.client.Subscribe(TopicNetwork, 0, l.handleNetwork); t.Wait() && t.Error() != nil {
		return fmt.Errorf("subscribe %s: %w", TopicNetwork, t.Error())
	}
	if t := l.client.Subscribe(TopicAddon, 0, l.handleAddon); t.Wait() && t.Error() != nil {
		return fmt.Errorf("subscribe %s: %w", TopicAddon, t.Error())
	}
	log.Info().Str("topics", TopicNetwork+", "+TopicAddon).Msg("Listening for gateway announcements")
	return nil
}

// Close disconnects from the broker.
func (l *Listener) Close() {
	l.client.Disconnect(250)
}

func (l *Listener) handleNetwork(_ mqtt.Client, msg mqtt.Message) {
	p, err := ParseNetwork(msg.Payload())
	if err != nil {
		log.Warn().Err(err).Str("topic", msg.Topic()).Msg("Dropping invalid announcement")
		return
	}

	_, res, err := l.manager.Start(context.Background(), flow.Seed{
		Trigger: flow.TriggerAnnounce,
		RawID:   p.ID,
		Host:    p.Host,
		Port:    p.Port,
	})
	if err != nil {
		log.Error().Err(err).Str("host", p.Host).Msg("Announcement flow failed to start")
		return
	}
	log.Info().
		Str("host", p.Host).
		Str("result", string(res.Kind)).
		Str("reason", res.Reason).
		Msg("Gateway announcement handled")
}

func (l *Listener) handleAddon(_ mqtt.Client, msg mqtt.Message) {
	p, err := ParseAddon(msg.Payload())
	if err != nil {
		log.Warn().Err(err).Str("topic", msg.Topic()).Msg("Dropping invalid addon announcement")
		return
	}

	_, res, err := l.manager.Start(context.Background(), flow.Seed{
		Trigger:    flow.TriggerAddon,
		RawID:      p.ID,
		Host:       p.Host,
		Port:       p.Port,
		APIKey:     p.APIKey,
		AddonLabel: p.Addon,
	})
	if err != nil {
		log.Error().Err(err).Str("host", p.Host).Msg("Addon flow failed to start")
		return
	}
	log.Info().
		Str("host", p.Host).
		Str("addon", p.Addon).
		Str("result", string(res.Kind)).
		Msg("Addon announcement handled")
}
