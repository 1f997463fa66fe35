package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintIgnoresInputOrder(t *testing.T) {
	cfg := DefaultConfig()
	a := Dataset{
		Tickets: []TicketRecord{
			ticket("alpha", 10, float64Ptr(0.3), 0),
			ticket("bravo", 20, nil, 1),
			ticket("alpha", 15, nil, 2),
		},
		Roster: []string{"charlie", "alpha"},
	}
	b := Dataset{
		Tickets: []TicketRecord{a.Tickets[2], a.Tickets[0], a.Tickets[1]},
		Roster:  []string{"alpha", "charlie"},
	}

	fa, err := Fingerprint(a, cfg)
	require.NoError(t, err)
	fb, err := Fingerprint(b, cfg)
	require.NoError(t, err)

	assert.Equal(t, fa, fb)
	assert.Len(t, fa, 16)
}

func TestFingerprintChangesWithInputs(t *testing.T) {
	cfg := DefaultConfig()
	ds := Dataset{Tickets: []TicketRecord{ticket("alpha", 10, nil, 0)}}
	base, err := Fingerprint(ds, cfg)
	require.NoError(t, err)

	otherCfg := DefaultConfig()
	otherCfg.SLAThresholdMinutes = 30
	withCfg, err := Fingerprint(ds, otherCfg)
	require.NoError(t, err)
	assert.NotEqual(t, base, withCfg)

	withSentiment, err := Fingerprint(Dataset{Tickets: []TicketRecord{ticket("alpha", 10, float64Ptr(0), 0)}}, cfg)
	require.NoError(t, err)
	assert.NotEqual(t, base, withSentiment)

	withWindow, err := Fingerprint(Dataset{
		Tickets: ds.Tickets,
		Window:  Window{Start: baseDay, End: baseDay.AddDate(0, 0, 6)},
	}, cfg)
	require.NoError(t, err)
	assert.NotEqual(t, base, withWindow)
}
