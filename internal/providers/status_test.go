package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		provider Name
		raw      string
		want     State
	}{
		{"vercel queued", NameVercel, "QUEUED", StatePending},
		{"vercel initializing", NameVercel, "INITIALIZING", StatePending},
		{"vercel building", NameVercel, "BUILDING", StateBuilding},
		{"vercel ready", NameVercel, "READY", StateSuccess},
		{"vercel error", NameVercel, "ERROR", StateFailed},
		{"vercel canceled", NameVercel, "CANCELED", StateFailed},
		{"netlify new", NameNetlify, "new", StatePending},
		{"netlify enqueued", NameNetlify, "enqueued", StatePending},
		{"netlify building", NameNetlify, "building", StateBuilding},
		{"netlify processing", NameNetlify, "processing", StateBuilding},
		{"netlify ready", NameNetlify, "ready", StateSuccess},
		{"netlify error", NameNetlify, "error", StateFailed},
		{"railway queued", NameRailway, "QUEUED", StatePending},
		{"railway deploying", NameRailway, "DEPLOYING", StateBuilding},
		{"railway success", NameRailway, "SUCCESS", StateSuccess},
		{"railway crashed", NameRailway, "CRASHED", StateFailed},
		{"railway canceled", NameRailway, "CANCELED", StateCancelled},
		{"railway removed", NameRailway, "REMOVED", StateCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.provider, tt.raw))
		})
	}
}

func TestNormalize_UnknownStatusFallsBackToPending(t *testing.T) {
	assert.Equal(t, StatePending, Normalize(NameVercel, "SOME_NEW_STATE"))
	assert.Equal(t, StatePending, Normalize(NameNetlify, ""))
	assert.Equal(t, StatePending, Normalize(Name("heroku"), "up"))
}
