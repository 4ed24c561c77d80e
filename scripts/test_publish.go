//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type alertDueEvent struct {
	AlertID   uuid.UUID `json:"alert_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	FireAfter int       `json:"fire_after_seconds"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	stream := flag.String("stream", "stream:busalert:due", "Stream to publish to")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := alertDueEvent{
		AlertID:   uuid.New(),
		Title:     "버스 출발 알림",
		Body:      "강남역에서 146 버스를 타려면 지금 준비하세요",
		FireAfter: 60,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: *stream,
		Values: map[string]interface{}{"data": string(data)},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish: %v", err)
	}

	fmt.Printf("Published %s to %s (message id %s)\n", event.AlertID, *stream, id)
}
