package providers

// statusTables maps each provider's raw status vocabulary onto the
// canonical states. Raw values a provider starts returning that are not
// listed here fall back to StatePending, so an unexpected status can
// never corrupt a deployment record or crash the poller. Adding a new
// provider status is a one-line change.
var statusTables = map[Name]map[string]State{
	NameVercel: {
		"QUEUED":       StatePending,
		"INITIALIZING": StatePending,
		"BUILDING":     StateBuilding,
		"READY":        StateSuccess,
		"ERROR":        StateFailed,
		"CANCELED":     StateFailed,
	},
	NameNetlify: {
		"new":        StatePending,
		"enqueued":   StatePending,
		"building":   StateBuilding,
		"processing": StateBuilding,
		"ready":      StateSuccess,
		"error":      StateFailed,
	},
	NameRailway: {
		"QUEUED":    StatePending,
		"WAITING":   StatePending,
		"BUILDING":  StateBuilding,
		"DEPLOYING": StateBuilding,
		"SUCCESS":   StateSuccess,
		"FAILED":    StateFailed,
		"CRASHED":   StateFailed,
		"CANCELED":  StateCancelled,
		"REMOVED":   StateCancelled,
	},
}

// Normalize maps a provider's raw status value to the canonical state.
// It is total: every input yields exactly one state.
func Normalize(provider Name, raw string) State {
	table, ok := statusTables[provider]
	if !ok {
		return StatePending
	}

	state, ok := table[raw]
	if !ok {
		return StatePending
	}

	return state
}
