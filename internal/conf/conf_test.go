package conf

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	var v struct {
		A Duration `json:"a"`
		B Duration `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"1.5s","b":2000000000}`), &v))

	assert.Equal(t, 1500*time.Millisecond, v.A.AsDuration())
	assert.Equal(t, 2*time.Second, v.B.AsDuration())

	assert.Error(t, json.Unmarshal([]byte(`{"a":"soon"}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`{"a":true}`), &v))
}

func TestPromoter_Defaults(t *testing.T) {
	var p *Promoter
	p = p.Defaults()

	assert.Equal(t, 24*time.Hour, p.CacheTtl.AsDuration())
	assert.Equal(t, 30*24*time.Hour, p.DedupTtl.AsDuration())
	assert.Equal(t, 1024, p.Queue.Size)
	assert.Equal(t, 4, p.Queue.Workers)
	assert.Equal(t, 10, p.JoinMaxAttempts)
	assert.Equal(t, 20, p.LeaderboardSize)

	custom := (&Promoter{Queue: &Promoter_Queue{Workers: 1}}).Defaults()
	assert.Equal(t, 1, custom.Queue.Workers)
}

func TestPromoter_DefaultsLeavesLoadedConfigUntouched(t *testing.T) {
	loaded := &Promoter{Queue: &Promoter_Queue{Workers: 2}}

	filled := loaded.Defaults()
	filled.Queue.Size = 7

	assert.NotSame(t, loaded, filled)
	assert.Zero(t, loaded.CacheTtl.AsDuration())
	assert.Zero(t, loaded.Queue.Size)
	assert.Nil(t, loaded.Outbox)
	assert.Equal(t, 2, filled.Queue.Workers)
	assert.Equal(t, 100, filled.Outbox.BatchSize)
}
