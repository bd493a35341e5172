package diagio

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"diagdeck/internal/diag"
)

// Current schema version - increment when cachePayload format changes
const cacheSchemaVersion uint16 = 1

// Digest identifies a decoded snapshot: SHA-256 over the input bytes, the
// input format and the schema version.
type Digest [sha256.Size]byte

// DigestOf computes the cache key for data decoded as format.
func DigestOf(data []byte, format Format) Digest {
	h := sha256.New()
	h.Write([]byte{byte(format), byte(cacheSchemaVersion >> 8), byte(cacheSchemaVersion)})
	h.Write(data)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// DiskCache хранит уже декодированные сообщения по хешу содержимого.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema   uint16
	Format   uint8
	Messages []wireMessage
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/<app> (or
// ~/.cache/<app>), creating the directory.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "snapshots", hex.EncodeToString(key[:])+".mp")
}

// Put stores msgs under key. A nil cache is a no-op.
func (c *DiskCache) Put(key Digest, format Format, msgs []diag.Message) error {
	if c == nil {
		return nil
	}
	payload := cachePayload{
		Schema:   cacheSchemaVersion,
		Format:   uint8(format),
		Messages: make([]wireMessage, 0, len(msgs)),
	}
	for i := range msgs {
		wm, err := toWire(&msgs[i])
		if err != nil {
			return err
		}
		payload.Messages = append(payload.Messages, wm)
	}
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(&payload); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, p); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Get loads the snapshot stored under key. A miss, or an entry written with
// another schema, reports false without error.
func (c *DiskCache) Get(key Digest) ([]diag.Message, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var payload cachePayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	msgs := make([]diag.Message, 0, len(payload.Messages))
	for i := range payload.Messages {
		m, err := payload.Messages[i].toMessage()
		if err != nil {
			return nil, false, err
		}
		msgs = append(msgs, m)
	}
	return msgs, true, nil
}

// DropAll removes every cached snapshot.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "snapshots"))
}
