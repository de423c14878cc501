package badgerfx

import "github.com/dgraph-io/badger/v4"

type Config struct {
	// Path to the BadgerDB data directory. An empty Dir opens an
	// in-memory database, which the tests rely on.
	Dir string
}

func (c Config) Build() badger.Options {
	if c.Dir == "" {
		return badger.DefaultOptions("").WithInMemory(true)
	}

	return badger.DefaultOptions(c.Dir)
}
