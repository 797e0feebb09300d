// Package serialio implements dmplatform.Platform on top of a real UART,
// the same byte-at-a-time read loop pkg/usock used for the nRF52 link,
// generalized to the Display Manager's platform contract. When no device
// is configured (an empty device path) it runs as a hex-dump loopback, the
// same fallback hal_sim.c's sim_write_bytes used before a real port was
// wired up; a configured device that fails to open is an error.
package serialio

import (
	"encoding/hex"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/tarm/serial"
)

// Transport owns the UART (or, in loopback mode, nothing) and marshals
// inbound bytes from its read goroutine onto a channel the main-context
// loop drains - a single-producer single-consumer handoff where the core
// itself never touches hardware, and the producer goroutine never calls
// into the core directly.
type Transport struct {
	port     *serial.Port
	loopback bool
	start    time.Time

	bytesIn  chan byte
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// Open opens devicePath at baud. An empty devicePath selects loopback
// mode: WriteBytes hex-dumps to the log instead of touching hardware, and
// no bytes are ever produced on Bytes().
func Open(devicePath string, baud int) (*Transport, error) {
	t := &Transport{
		loopback: devicePath == "",
		start:    time.Now(),
		bytesIn:  make(chan byte, 256),
		stopCh:   make(chan struct{}),
	}

	if t.loopback {
		log.Printf("serialio: no device configured, running in loopback mode")
		return t, nil
	}

	config := &serial.Config{
		Name:        devicePath,
		Baud:        baud,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
		ReadTimeout: 0,
	}
	port, err := serial.OpenPort(config)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port: %v", err)
	}
	t.port = port

	t.wg.Add(1)
	go t.readLoop()

	return t, nil
}

// Bytes is the channel the main-context loop should drain and feed, byte
// by byte, into a dmframe.Parser.
func (t *Transport) Bytes() <-chan byte {
	return t.bytesIn
}

// WriteBytes implements dmplatform.Platform. A failed write is logged and
// otherwise swallowed - the core never learns of transport errors.
func (t *Transport) WriteBytes(data []byte) {
	if t.loopback || t.port == nil {
		log.Printf("[TX loopback] %s", hex.EncodeToString(data))
		return
	}
	if _, err := t.port.Write(data); err != nil {
		log.Printf("serialio: write failed: %v", err)
	}
}

// Millis implements dmplatform.Platform with a monotonic counter anchored
// at Open. The uint32 result wraps after about 49.7 days, as the
// free-running-may-wrap contract allows.
func (t *Transport) Millis() uint32 {
	return uint32(time.Since(t.start).Milliseconds())
}

// Log implements dmplatform.Platform.
func (t *Transport) Log(msg string) {
	log.Printf("[DM] %s", msg)
}

// Close stops the read loop (if any) and releases the port.
func (t *Transport) Close() error {
	close(t.stopCh)
	t.wg.Wait()
	if t.port != nil {
		return t.port.Close()
	}
	return nil
}

func (t *Transport) readLoop() {
	defer t.wg.Done()

	buf := make([]byte, 1)
	for {
		select {
		case <-t.stopCh:
			return
		default:
		}

		n, err := t.port.Read(buf)
		if err != nil {
			log.Printf("serialio: read error: %v", err)
			time.Sleep(10 * time.Millisecond)
			continue
		}
		if n == 0 {
			continue
		}

		select {
		case t.bytesIn <- buf[0]:
		case <-t.stopCh:
			return
		}
	}
}
