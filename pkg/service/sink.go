package service

import (
	"log"
	"strconv"

	"github.com/fxamacker/cbor/v2"

	"github.com/librescoot/display-manager/pkg/binder"
	redisclient "github.com/librescoot/display-manager/pkg/redis"
)

// redisSink mirrors widget/page state into Redis so other processes on
// the vehicle can see what's currently on screen without speaking the
// serial protocol themselves.
type redisSink struct {
	redis *redisclient.Client
}

func newRedisSink(client *redisclient.Client) *redisSink {
	return &redisSink{redis: client}
}

// widgetSnapshot is the CBOR-encoded shape stored per widget index: a
// compact, self-describing envelope for a field the host side doesn't
// otherwise need to parse byte-by-byte.
type widgetSnapshot struct {
	Kind    binder.WidgetKind
	Text    string
	Value   int16
	Visible bool
	Enabled bool
}

func (s *redisSink) MirrorWidget(idx int, w binder.Widget) {
	if s == nil || s.redis == nil {
		return
	}
	blob, err := cbor.Marshal(widgetSnapshot{
		Kind:    w.Kind,
		Text:    w.Text,
		Value:   w.Value,
		Visible: w.Visible,
		Enabled: w.Enabled,
	})
	if err != nil {
		log.Printf("service: failed to CBOR-encode widget %d: %v", idx, err)
		return
	}
	field := strconv.Itoa(idx)
	if err := s.redis.WriteBytes(KeyWidgets, field, blob); err != nil {
		log.Printf("service: failed to mirror widget %d to Redis: %v", idx, err)
		return
	}
	if err := s.redis.Publish(KeyWidgets, field); err != nil {
		log.Printf("service: failed to publish widget %d change: %v", idx, err)
	}
}

func (s *redisSink) MirrorPage(pageID uint8, name string) {
	if s == nil || s.redis == nil {
		return
	}
	if err := s.redis.WriteAndPublishInt(KeyUI, "page", int(pageID)); err != nil {
		log.Printf("service: failed to mirror page id to Redis: %v", err)
	}
	if err := s.redis.WriteAndPublishString(KeyUI, "page_name", name); err != nil {
		log.Printf("service: failed to mirror page name to Redis: %v", err)
	}
}

// publishStats mirrors the parser's observability counters to Redis.
func publishStats(client *redisclient.Client, framesOK, framesCRCError, framesLengthError uint32) {
	if client == nil {
		return
	}
	if err := client.WriteInt(KeyStats, "frames_ok", int(framesOK)); err != nil {
		log.Printf("service: failed to mirror frames_ok: %v", err)
	}
	if err := client.WriteInt(KeyStats, "frames_crc_error", int(framesCRCError)); err != nil {
		log.Printf("service: failed to mirror frames_crc_error: %v", err)
	}
	if err := client.WriteInt(KeyStats, "frames_length_error", int(framesLengthError)); err != nil {
		log.Printf("service: failed to mirror frames_length_error: %v", err)
	}
}
