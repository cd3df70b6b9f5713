package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/five82/tote/internal/events"
)

// Read returns at most maxLines from the end of the file at path. A
// maxLines of zero or less returns every line.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Records returns the last maxRecords journal entries at path. Lines that
// fail to decode are skipped; a torn final line from a concurrent writer is
// the usual cause.
func Records(path string, maxRecords int) ([]events.Record, error) {
	lines, err := Read(path, maxRecords)
	if err != nil {
		return nil, err
	}
	out := make([]events.Record, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := events.DecodeRecord(line)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// Namer resolves a product id to a display name. It may return "".
type Namer func(id int64) string

// Describe renders a record as one human-readable line, e.g.
//
//	14:32:05  addToCart        Bananas ×3
func Describe(rec events.Record, name Namer) string {
	return fmt.Sprintf("%s  %-16s %s", rec.Timestamp.Local().Format("15:04:05"), rec.Type, Detail(rec, name))
}

// Detail renders only the payload part of a record.
func Detail(rec events.Record, name Namer) string {
	product := func(id int64) string {
		if name != nil {
			if n := name(id); n != "" {
				return n
			}
		}
		return fmt.Sprintf("#%d", id)
	}

	switch rec.Type {
	case events.AddToCart:
		var p events.AddToCartPayload
		if decode(rec, &p) {
			return fmt.Sprintf("%s ×%d", product(p.ID), p.Quantity)
		}
	case events.RemoveFromCart:
		var p events.RemoveFromCartPayload
		if decode(rec, &p) {
			return fmt.Sprintf("%s removed, %d left", product(p.ID), p.ItemCount)
		}
	case events.UpdateQuantity:
		var p events.UpdateQuantityPayload
		if decode(rec, &p) {
			return fmt.Sprintf("%s %d → %d", product(p.ID), p.Before, p.After)
		}
	case events.ClearCart:
		var p events.ClearCartPayload
		if decode(rec, &p) {
			return fmt.Sprintf("%d items discarded", p.ItemCount)
		}
	case events.CartIdle:
		var p events.CartIdlePayload
		if decode(rec, &p) {
			return fmt.Sprintf("idle %s with %d items", p.IdleDuration.Round(time.Second), p.ItemCount)
		}
	case events.AddBurstStarted:
		return "rapid adding started"
	case events.AddBurstEnded:
		var p events.AddBurstEndedPayload
		if decode(rec, &p) {
			return fmt.Sprintf("%d items in %s", p.ItemsAdded, p.Duration.Round(100*time.Millisecond))
		}
	case events.CartToggled:
		var p events.CartToggledPayload
		if decode(rec, &p) {
			return fmt.Sprintf("cart opened %d times in %s", p.Count, p.WindowDuration.Round(time.Second))
		}
	case events.HoverIntent:
		var p events.HoverIntentPayload
		if decode(rec, &p) {
			return fmt.Sprintf("looked at %s for %s", product(p.ProductID), p.Duration.Round(100*time.Millisecond))
		}
	}
	return string(rec.Payload)
}

func decode(rec events.Record, dst any) bool {
	if len(rec.Payload) == 0 {
		return false
	}
	return json.Unmarshal(rec.Payload, dst) == nil
}
