package connection

import (
	"fmt"
	"log"
	"net"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// ConnectKafkaWithRetry verifies the broker is reachable before returning a
// writer, so the worker fails fast on a misconfigured address.
func ConnectKafkaWithRetry(broker string, maxRetries int) (*kafkago.Writer, error) {
	var lastErr error

	for i := 1; i <= maxRetries; i++ {
		conn, err := net.DialTimeout("tcp", broker, 5*time.Second)
		if err == nil {
			conn.Close()
			return &kafkago.Writer{
				Addr:         kafkago.TCP(broker),
				Balancer:     &kafkago.LeastBytes{},
				RequiredAcks: kafkago.RequireAll,
				BatchTimeout: 50 * time.Millisecond,
			}, nil
		}

		lastErr = err
		log.Printf("kafka retry %d/%d failed: %v", i, maxRetries, err)
		time.Sleep(5 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect kafka after %d retries: %w", maxRetries, lastErr)
}
