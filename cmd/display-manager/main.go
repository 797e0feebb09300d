package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/librescoot/display-manager/pkg/redis"
	"github.com/librescoot/display-manager/pkg/serialio"
	"github.com/librescoot/display-manager/pkg/service"
)

// Configuration flags
var (
	serialDevice = flag.String("serial", "/dev/ttyS1", "Serial device path")
	loopback     = flag.Bool("loopback", false, "Run without a real serial device, hex-dumping outbound frames to the log instead")
	baudRate     = flag.Int("baud", 115200, "Serial baud rate")
	redisAddr    = flag.String("redis-addr", "localhost:6379", "Redis server address")
	redisPass    = flag.String("redis-pass", "", "Redis password")
	redisDB      = flag.Int("redis-db", 0, "Redis database number")
)

func main() {
	flag.Parse()

	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Printf("Starting Display Manager")
	if *loopback {
		log.Printf("Serial device: loopback (forced by -loopback)")
	} else {
		log.Printf("Serial device: %q", *serialDevice)
	}
	log.Printf("Baud rate: %d", *baudRate)
	log.Printf("Redis address: %s", *redisAddr)

	redisClient, err := redis.New(*redisAddr, *redisPass, *redisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Printf("Connected to Redis")

	devicePath := *serialDevice
	if *loopback {
		devicePath = ""
	}
	transport, err := serialio.Open(devicePath, *baudRate)
	if err != nil {
		log.Fatalf("Failed to open serial transport: %v", err)
	}
	defer transport.Close()

	svc := service.New(transport, redisClient)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runDone := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(runDone)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	log.Printf("Shutting down...")
	cancel()
	<-runDone
}
