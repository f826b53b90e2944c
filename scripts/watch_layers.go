// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type LayerUpdatedEvent struct {
	LayerSetID      string            `json:"layer_set_id"`
	Generation      uint64            `json:"generation"`
	ComputedAt      time.Time         `json:"computed_at"`
	Resolution      int               `json:"resolution"`
	DatasetVersions map[string]uint64 `json:"dataset_versions"`
}

type RankedCell struct {
	CellID string  `json:"cell_id"`
	Diff   float64 `json:"diff"`
}

type LayerSet struct {
	Generation uint64                  `json:"generation"`
	Top        map[string][]RankedCell `json:"top"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	stream := flag.String("stream", "stream:layers:updated", "Stream to watch")
	cacheKey := flag.String("key", "layers:current", "Cache key of the current layer set")
	timeout := flag.Duration("timeout", 5*time.Minute, "Stop watching after")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	fmt.Printf("⏳ Watching %s on %s...\n", *stream, *redisAddr)

	lastID := "$"
	for {
		results, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{*stream, lastID},
			Count:   10,
			Block:   5 * time.Second,
		}).Result()
		if ctx.Err() != nil {
			fmt.Println("⌛ Done watching")
			return
		}
		if err != nil && err != redis.Nil {
			log.Printf("XREAD failed: %v", err)
			continue
		}

		for _, s := range results {
			for _, msg := range s.Messages {
				lastID = msg.ID

				dataStr, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}

				var event LayerUpdatedEvent
				if err := json.Unmarshal([]byte(dataStr), &event); err != nil {
					log.Printf("Bad event %s: %v", msg.ID, err)
					continue
				}

				fmt.Printf("\n✅ Layers updated\n")
				fmt.Printf("   Message ID: %s\n", msg.ID)
				fmt.Printf("   Generation: %d (res %d)\n", event.Generation, event.Resolution)
				fmt.Printf("   Computed at: %s\n", event.ComputedAt.Format(time.RFC3339))
				fmt.Printf("   Dataset versions: %v\n", event.DatasetVersions)

				printTop(ctx, client, *cacheKey)
			}
		}
	}
}

func printTop(ctx context.Context, client *redis.Client, key string) {
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		fmt.Printf("   ❌ No cached layer set at %s: %v\n", key, err)
		return
	}

	var layers LayerSet
	if err := json.Unmarshal(raw, &layers); err != nil {
		fmt.Printf("   ❌ Failed to decode layer set: %v\n", err)
		return
	}

	for pair, cells := range layers.Top {
		if len(cells) == 0 {
			continue
		}
		fmt.Printf("   %s: top %s (%+.2f)\n", pair, cells[0].CellID, cells[0].Diff)
	}
}
