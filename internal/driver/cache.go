package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when cachePayload format changes
const cacheSchemaVersion uint16 = 1

// Digest keys the symbol cache by manifest content.
type Digest [32]byte

// DigestOf hashes raw manifest bytes into a cache key.
func DigestOf(data []byte) Digest {
	return sha256.Sum256(data)
}

// Cache хранит результаты батчей по дайджесту манифеста на диске.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// cachePayload stores one batch result for fast re-runs over an
// unchanged manifest.
type cachePayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Labels []string
	Names  []string
}

// OpenCache initializes and returns a disk cache at the standard
// location.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки — подкаталог "syms".
	return filepath.Join(c.dir, "syms", hexKey+".mp")
}

// Put serializes and writes a batch result to the disk cache.
func (c *Cache) Put(key Digest, symbols []Symbol) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := cachePayload{
		Schema: cacheSchemaVersion,
		Labels: make([]string, len(symbols)),
		Names:  make([]string, len(symbols)),
	}
	for i, s := range symbols {
		payload.Labels[i] = s.Label
		payload.Names[i] = s.Name
	}

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Printf("failed to remove temp file: %v", err)
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a cached batch result. A missing entry or a payload from
// another schema version is a miss, not an error.
func (c *Cache) Get(key Digest) ([]Symbol, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			panic(closeErr)
		}
	}()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != cacheSchemaVersion || len(payload.Labels) != len(payload.Names) {
		return nil, false, nil
	}

	symbols := make([]Symbol, len(payload.Labels))
	for i := range payload.Labels {
		symbols[i] = Symbol{Label: payload.Labels[i], Name: payload.Names[i]}
	}
	return symbols, true, nil
}
