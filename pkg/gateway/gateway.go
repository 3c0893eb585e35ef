package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/erickyeagle/notification-roles-bot/config"
	"github.com/erickyeagle/notification-roles-bot/pkg/xcontext"
	"github.com/gorilla/websocket"
)

const defaultGatewayURL = "wss://gateway.discord.gg/?v=10&encoding=json"

const maxReconnectBackoff = time.Minute

// Session maintains the websocket connection to the Discord gateway and
// delivers dispatched events over the Ready and Messages channels.
type Session struct {
	url     string
	token   string
	intents int

	Ready    chan Ready
	Messages chan MessageCreate

	seq int64
}

func New(cfg config.DiscordConfigs) *Session {
	url := cfg.GatewayURL
	if url == "" {
		url = defaultGatewayURL
	}

	return &Session{
		url:      url,
		token:    cfg.BotToken,
		intents:  IntentGuilds | IntentGuildMessages | IntentMessageContent,
		Ready:    make(chan Ready, 1),
		Messages: make(chan MessageCreate, 128),
	}
}

// Run connects to the gateway and services it until ctx is canceled,
// redialing with backoff whenever the connection drops.
func (s *Session) Run(ctx context.Context) {
	backoff := time.Second
	for {
		startedAt := time.Now()
		err := s.connect(ctx)
		if ctx.Err() != nil {
			return
		}

		if err != nil {
			xcontext.Logger(ctx).Warnf("Gateway connection ended: %v", err)
		}

		// A connection that survived a while earns a fresh backoff.
		if time.Since(startedAt) > maxReconnectBackoff {
			backoff = time.Second
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxReconnectBackoff {
			backoff = maxReconnectBackoff
		}
	}
}

func (s *Session) connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	connDone := make(chan struct{})
	defer close(connDone)

	// The connection allows a single concurrent writer, so all outbound
	// payloads funnel through this channel.
	w := make(chan payload, 16)
	go func() {
		for {
			select {
			case <-connDone:
				return
			case p := <-w:
				if err := conn.WriteJSON(p); err != nil {
					return
				}
			}
		}
	}()

	// Unblock ReadMessage when the context is canceled.
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-connDone:
		}
	}()

	for {
		t, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		if t == websocket.BinaryMessage {
			msg, err = Decompress(msg)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot decompress gateway frame: %v", err)
				continue
			}
		}

		var p payload
		if err := json.Unmarshal(msg, &p); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot unmarshal gateway payload: %v", err)
			continue
		}

		switch p.Op {
		case opHello:
			var hello helloData
			if err := json.Unmarshal(p.D, &hello); err != nil {
				return err
			}

			go s.runHeartbeat(connDone, w, time.Duration(hello.HeartbeatInterval)*time.Millisecond)

			identify, err := s.identifyPayload()
			if err != nil {
				return err
			}
			s.send(connDone, w, identify)

		case opHeartbeat:
			s.send(connDone, w, s.heartbeatPayload())

		case opHeartbeatACK:

		case opReconnect:
			return errors.New("gateway requested a reconnect")

		case opInvalidSession:
			return errors.New("gateway invalidated the session")

		case opDispatch:
			atomic.StoreInt64(&s.seq, p.S)
			s.dispatch(ctx, p)
		}
	}
}

func (s *Session) runHeartbeat(connDone chan struct{}, w chan payload, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-connDone:
			return
		case <-ticker.C:
			s.send(connDone, w, s.heartbeatPayload())
		}
	}
}

func (s *Session) send(connDone chan struct{}, w chan payload, p payload) {
	select {
	case <-connDone:
	case w <- p:
	}
}

func (s *Session) identifyPayload() (payload, error) {
	d, err := json.Marshal(identifyData{
		Token:   s.token,
		Intents: s.intents,
		Properties: identifyProperties{
			OS:      runtime.GOOS,
			Browser: "notification-roles-bot",
			Device:  "notification-roles-bot",
		},
	})
	if err != nil {
		return payload{}, err
	}

	return payload{Op: opIdentify, D: d}, nil
}

func (s *Session) heartbeatPayload() payload {
	d, _ := json.Marshal(atomic.LoadInt64(&s.seq))
	return payload{Op: opHeartbeat, D: d}
}

func (s *Session) dispatch(ctx context.Context, p payload) {
	switch p.T {
	case eventReady:
		var ready Ready
		if err := json.Unmarshal(p.D, &ready); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot unmarshal ready event: %v", err)
			return
		}

		select {
		case s.Ready <- ready:
		default:
		}

	case eventMessageCreate:
		var msg MessageCreate
		if err := json.Unmarshal(p.D, &msg); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot unmarshal message event: %v", err)
			return
		}

		select {
		case s.Messages <- msg:
		case <-ctx.Done():
		}
	}
}
