// Package logger emits structured JSON records to stdout and, when a
// sink is attached, mirrors them onto a logs topic. The sink is a
// fire-and-forget side channel: its failures never reach the caller.
package logger

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"trip-service/internal/events"
)

const serviceName = "trip-service"

// Sink mirrors log records to a bus topic. *kafka.Client satisfies it.
type Sink interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

// LogsTopic is where mirrored records go.
const LogsTopic = "trip_logs"

var (
	mu   sync.RWMutex
	sink Sink
)

// SetSink attaches the bus sink. Pass nil to detach.
func SetSink(s Sink) {
	mu.Lock()
	sink = s
	mu.Unlock()
}

func Info(message string, fields map[string]any) {
	logJSON("info", message, fields)
}

func Warn(message string, fields map[string]any) {
	logJSON("warn", message, fields)
}

func Error(message string, fields map[string]any) {
	logJSON("error", message, fields)
}

func logJSON(level, message string, fields map[string]any) {
	ts := time.Now().UTC().Format(time.RFC3339)

	entry := map[string]any{
		"timestamp": ts,
		"level":     level,
		"message":   message,
		"service":   serviceName,
	}
	for k, v := range fields {
		entry[k] = v
	}

	jsonBytes, _ := json.Marshal(entry)
	log.Println(string(jsonBytes))

	mu.RLock()
	s := sink
	mu.RUnlock()
	if s == nil {
		return
	}

	ev := events.LogEvent{Message: message, Service: serviceName, Timestamp: ts}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		// best effort; a dead logs topic must not affect the operation
		_ = s.Publish(ctx, LogsTopic, serviceName, ev)
	}()
}
