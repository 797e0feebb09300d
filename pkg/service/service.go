// Package service wires the Display Manager core (dmframe, dispatcher,
// binder) to a transport and to Redis, and owns the single goroutine
// allowed to call Parser.Feed. This is the process's top-level run loop.
package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/librescoot/display-manager/pkg/binder"
	"github.com/librescoot/display-manager/pkg/dispatcher"
	"github.com/librescoot/display-manager/pkg/dmframe"
	redisclient "github.com/librescoot/display-manager/pkg/redis"
	"github.com/librescoot/display-manager/pkg/serialio"
)

// statsInterval is how often the parser's counters get mirrored to Redis.
const statsInterval = 5 * time.Second

// Service ties the core together with a transport and a Redis client and
// runs the protocol for as long as Run is blocked.
type Service struct {
	transport  *serialio.Transport
	redis      *redisclient.Client
	parser     *dmframe.Parser
	encoder    *dmframe.Encoder
	dispatcher *dispatcher.Dispatcher
	binder     *binder.Binder

	stopCh chan struct{}
}

// New builds a Service with the default two-page widget registry installed
// over the dispatcher's NACK-everything defaults.
func New(transport *serialio.Transport, redisClient *redisclient.Client) *Service {
	encoder := dmframe.NewEncoder()
	disp := dispatcher.New(transport, encoder)

	widgets, pages := defaultRegistry()
	bnd := binder.New(widgets, pages, encoder, newRedisSink(redisClient))
	bnd.Install(disp.Table)

	return &Service{
		transport:  transport,
		redis:      redisClient,
		parser:     dmframe.NewParser(),
		encoder:    encoder,
		dispatcher: disp,
		binder:     bnd,
		stopCh:     make(chan struct{}),
	}
}

// Run drains the transport's byte stream and the simulated-input channel
// until ctx is cancelled or Stop is called. It blocks and is meant to be
// the last call in main.
func (s *Service) Run(ctx context.Context) {
	var simInput <-chan *simEvent
	var closeSimInput func()
	if s.redis != nil {
		simInput, closeSimInput = s.subscribeSimulatedInput()
		defer closeSimInput()
	}

	statsTicker := time.NewTicker(statsInterval)
	defer statsTicker.Stop()

	s.logLastKnownUIState()
	s.transport.Log("service: started")

	for {
		select {
		case <-ctx.Done():
			s.transport.Log("service: stopping")
			return
		case <-s.stopCh:
			s.transport.Log("service: stopping")
			return

		case b, ok := <-s.transport.Bytes():
			if !ok {
				return
			}
			s.parser.Feed(b, s.transport.Log, s.dispatcher.Dispatch)

		case ev, ok := <-simInput:
			if !ok {
				simInput = nil
				continue
			}
			s.applySimulatedEvent(ev)

		case <-statsTicker.C:
			publishStats(s.redis, s.parser.FramesOK, s.parser.FramesCRCError, s.parser.FramesLengthError)
		}
	}
}

// Stop unblocks a running Run.
func (s *Service) Stop() {
	close(s.stopCh)
}

// logLastKnownUIState reads back whatever page a previous run last
// mirrored to Redis and logs it, purely as a startup diagnostic - the
// registry itself always starts fresh from defaultRegistry, but knowing
// what the host last saw on screen is useful when debugging a restart.
func (s *Service) logLastKnownUIState() {
	if s.redis == nil {
		return
	}
	pageID, err := s.redis.GetInt(KeyUI, "page")
	if err != nil {
		s.transport.Log("service: no prior UI state in Redis")
		return
	}
	name, err := s.redis.GetString(KeyUI, "page_name")
	if err != nil {
		name = "unknown"
	}
	log.Printf("service: last known page before this run was %d (%s)", pageID, name)
}

// simEvent is a parsed simulated-input message from the hardware-free
// input harness.
type simEvent struct {
	kind   string
	widget uint8
	value  int16
	x, y   int16
}

// subscribeSimulatedInput listens on ChannelSimulatedInput for messages of
// the form "button:<idx>", "slider:<idx>:<value>", or "touch:<x>:<y>" and
// decodes them into simEvents. Malformed messages are logged and dropped.
func (s *Service) subscribeSimulatedInput() (<-chan *simEvent, func()) {
	raw, unsubscribe := s.redis.Subscribe(ChannelSimulatedInput)
	out := make(chan *simEvent, 16)

	go func() {
		defer close(out)
		for msg := range raw {
			ev, err := parseSimEvent(msg.Payload)
			if err != nil {
				log.Printf("service: bad simulated-input message %q: %v", msg.Payload, err)
				continue
			}
			out <- ev
		}
	}()

	return out, unsubscribe
}

func parseSimEvent(payload string) (*simEvent, error) {
	parts := strings.Split(payload, ":")
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty message")
	}

	switch parts[0] {
	case "button":
		if len(parts) != 2 {
			return nil, fmt.Errorf("expected button:<idx>")
		}
		idx, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("bad widget index: %w", err)
		}
		return &simEvent{kind: "button", widget: uint8(idx)}, nil

	case "slider":
		if len(parts) != 3 {
			return nil, fmt.Errorf("expected slider:<idx>:<value>")
		}
		idx, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("bad widget index: %w", err)
		}
		value, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("bad value: %w", err)
		}
		return &simEvent{kind: "slider", widget: uint8(idx), value: int16(value)}, nil

	case "touch":
		if len(parts) != 3 {
			return nil, fmt.Errorf("expected touch:<x>:<y>")
		}
		x, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("bad x: %w", err)
		}
		y, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("bad y: %w", err)
		}
		return &simEvent{kind: "touch", x: int16(x), y: int16(y)}, nil

	default:
		return nil, fmt.Errorf("unknown event kind %q", parts[0])
	}
}

func (s *Service) applySimulatedEvent(ev *simEvent) {
	switch ev.kind {
	case "button":
		s.binder.EmitButtonPressed(s.transport, ev.widget)
	case "slider":
		s.binder.EmitSliderChanged(s.transport, ev.widget, ev.value)
	case "touch":
		s.binder.EmitTouchEvent(s.transport, ev.x, ev.y)
	}
}
