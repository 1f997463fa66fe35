package scoring

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint identifies a (dataset, config) pair. Equal inputs give equal
// fingerprints regardless of the order tickets or roster entries arrive in.
func Fingerprint(ds Dataset, cfg Config) (string, error) {
	h := xxhash.New()

	cfgBytes, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	_, _ = h.Write(cfgBytes)

	var buf [8]byte
	writeInt := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}
	writeFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}
	writeString := func(s string) {
		writeInt(int64(len(s)))
		_, _ = h.WriteString(s)
	}

	writeInt(unixNano(ds.Window.Start))
	writeInt(unixNano(ds.Window.End))

	roster := append([]string(nil), ds.Roster...)
	sort.Strings(roster)
	writeInt(int64(len(roster)))
	for _, team := range roster {
		writeString(team)
	}

	tickets := append([]TicketRecord(nil), ds.Tickets...)
	sort.Slice(tickets, func(i, j int) bool { return ticketLess(tickets[i], tickets[j]) })
	writeInt(int64(len(tickets)))
	for _, t := range tickets {
		writeString(t.Team)
		writeFloat(t.ResponseTimeMinutes)
		writeInt(unixNano(t.Timestamp))
		if t.SentimentScore == nil {
			_, _ = h.Write([]byte{0})
		} else {
			_, _ = h.Write([]byte{1})
			writeFloat(*t.SentimentScore)
		}
	}

	return fmt.Sprintf("%016x", h.Sum64()), nil
}

func unixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func ticketLess(a, b TicketRecord) bool {
	if c := strings.Compare(a.Team, b.Team); c != 0 {
		return c < 0
	}
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.Before(b.Timestamp)
	}
	if a.ResponseTimeMinutes != b.ResponseTimeMinutes {
		return a.ResponseTimeMinutes < b.ResponseTimeMinutes
	}
	switch {
	case a.SentimentScore == nil:
		return b.SentimentScore != nil
	case b.SentimentScore == nil:
		return false
	default:
		return *a.SentimentScore < *b.SentimentScore
	}
}
