// robots.go
package redcore

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gammazero/deque"
	lru "github.com/hashicorp/golang-lru"
)

// RobotsTxtError reports a problem fetching or parsing an origin's
// robots.txt. Grounded on redbot/resource/fetch.py's RobotsTxtError,
// whose server_status default was ("502", "Gateway Error").
type RobotsTxtError struct {
	Origin       string
	ServerStatus string
	Message      string
}

func (e *RobotsTxtError) Error() string {
	return fmt.Sprintf("robots.txt error for %s (%s): %s", e.Origin, e.ServerStatus, e.Message)
}

// robotsEntry is one origin's cached robots.txt state: its parsed
// disallow rules and when it was fetched.
type robotsEntry struct {
	fetchedAt time.Time
	allow     *robotsRules
	err       error
}

// robotsRules is a minimal robots.txt ruleset: disallow/allow path
// prefixes for the user-agent this engine presents as, falling back to
// "*". Grounded on the subset of RFC 9309 the original's robots.txt
// support exercises: prefix matching, where the longest matching rule
// wins and a tie between allow and disallow goes to allow.
type robotsRules struct {
	disallow []string
	allow    []string
}

func (r *robotsRules) permits(path string) bool {
	bestAllow, bestDisallow := -1, -1
	for _, p := range r.allow {
		if strings.HasPrefix(path, p) && len(p) > bestAllow {
			bestAllow = len(p)
		}
	}
	for _, p := range r.disallow {
		if strings.HasPrefix(path, p) && len(p) > bestDisallow {
			bestDisallow = len(p)
		}
	}
	return bestAllow >= bestDisallow
}

// parseRobotsTxt parses a robots.txt body looking for the record that
// applies to userAgent (falling back to "*"). Grounded on the
// Disallow/Allow/User-agent directives redbot's fetch_robots_txt
// consults via its own parser.
func parseRobotsTxt(body []byte, userAgent string) *robotsRules {
	lines := strings.Split(string(body), "\n")
	rules := &robotsRules{}
	matching := false
	sawSpecific := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if line == "" {
			continue
		}
		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			continue
		}
		field := strings.ToLower(strings.TrimSpace(line[:colon]))
		value := strings.TrimSpace(line[colon+1:])
		switch field {
		case "user-agent":
			if strings.EqualFold(value, userAgent) {
				matching = true
				sawSpecific = true
				rules = &robotsRules{}
			} else if value == "*" && !sawSpecific {
				matching = true
				rules = &robotsRules{}
			} else {
				matching = false
			}
		case "disallow":
			if matching && value != "" {
				rules.disallow = append(rules.disallow, value)
			}
		case "allow":
			if matching && value != "" {
				rules.allow = append(rules.allow, value)
			}
		}
	}
	return rules
}

// urlToOrigin reduces a URI to its scheme://host[:port] origin, the unit
// robots.txt applies to. Grounded on fetch.py's url_to_origin.
func urlToOrigin(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("cannot derive origin from %q", rawURI)
	}
	return u.Scheme + "://" + u.Host, nil
}

// robotsCache memoizes robots.txt lookups per origin in an in-memory LRU
// (mirroring the teacher's token.go TokenCacheWrapper pattern: lru.New
// plus a mutex and a timestamp-based TTL), optionally persisted to disk,
// and coalesces concurrent lookups for the same origin so only one
// fetch is in flight at a time — grounded on fetch.py's robot_files/
// robot_lookups bookkeeping.
type robotsCache struct {
	mu       sync.Mutex
	lru      *lru.Cache
	ttl      time.Duration
	dir      string
	inflight map[string]*deque.Deque[chan robotsEntry]
}

func newRobotsCache(capacity int, dir string, ttl time.Duration) *robotsCache {
	if capacity <= 0 {
		capacity = 256
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	c, _ := lru.New(capacity)
	return &robotsCache{
		lru:      c,
		ttl:      ttl,
		dir:      dir,
		inflight: make(map[string]*deque.Deque[chan robotsEntry]),
	}
}

// Fetch returns whether path is permitted for origin, fetching and
// caching origin's robots.txt if necessary via fetchFn (which performs
// the actual HTTP GET for /robots.txt — injected so robotsCache itself
// stays transport-agnostic). Concurrent callers for the same origin
// share one in-flight fetch.
func (c *robotsCache) Fetch(origin, userAgent, path string, fetchFn func(origin string) ([]byte, error)) (bool, error) {
	entry, ok := c.lookup(origin, userAgent)
	if ok {
		if entry.err != nil {
			return true, entry.err
		}
		return entry.allow.permits(path), nil
	}

	wait, isLeader := c.joinOrLead(origin)
	if !isLeader {
		e := <-wait
		if e.err != nil {
			return true, e.err
		}
		return e.allow.permits(path), nil
	}

	body, err := fetchFn(origin)
	var result robotsEntry
	result.fetchedAt = time.Now()
	if err != nil {
		result.err = &RobotsTxtError{Origin: origin, ServerStatus: "502", Message: err.Error()}
	} else {
		result.allow = parseRobotsTxt(body, userAgent)
		c.persist(origin, body)
	}
	c.store(origin, result)
	c.release(origin, result)

	if result.err != nil {
		return true, result.err
	}
	return result.allow.permits(path), nil
}

// lookup consults the in-memory LRU first and, on a miss, falls back to
// the on-disk cache (read before the network, per fetch_robots_txt's
// caching order) before reporting a genuine miss that requires a fetch.
// A disk hit is promoted into the LRU so later lookups avoid the disk.
func (c *robotsCache) lookup(origin, userAgent string) (robotsEntry, bool) {
	c.mu.Lock()
	v, ok := c.lru.Get(origin)
	if ok {
		entry := v.(robotsEntry)
		if time.Since(entry.fetchedAt) <= c.ttl {
			c.mu.Unlock()
			return entry, true
		}
		c.lru.Remove(origin)
	}
	c.mu.Unlock()

	entry, ok := c.readDisk(origin, userAgent)
	if !ok {
		return robotsEntry{}, false
	}
	c.store(origin, entry)
	return entry, true
}

// readDisk loads a previously persisted robots.txt body for origin, if
// one exists and is within the TTL, gated on the file's mtime rather
// than an in-memory timestamp since the cache may be read fresh after a
// process restart.
func (c *robotsCache) readDisk(origin, userAgent string) (robotsEntry, bool) {
	if c.dir == "" {
		return robotsEntry{}, false
	}
	path := filepath.Join(c.dir, diskCacheName(origin))
	info, err := os.Stat(path)
	if err != nil {
		return robotsEntry{}, false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return robotsEntry{}, false
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return robotsEntry{}, false
	}
	return robotsEntry{fetchedAt: info.ModTime(), allow: parseRobotsTxt(body, userAgent)}, true
}

// diskCacheName names the on-disk cache file for origin as the SHA-1 hex
// digest of the origin string, so it can't leak filesystem-unsafe
// characters and stays stable across a %-escaping library change.
func diskCacheName(origin string) string {
	sum := sha1.Sum([]byte(origin))
	return hex.EncodeToString(sum[:])
}

func (c *robotsCache) store(origin string, entry robotsEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(origin, entry)
}

// joinOrLead registers the caller as either the leader (who performs the
// fetch) or a follower (who waits on the returned channel) for origin.
func (c *robotsCache) joinOrLead(origin string) (chan robotsEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	waiters, exists := c.inflight[origin]
	if !exists {
		waiters = deque.New[chan robotsEntry]()
		c.inflight[origin] = waiters
		return nil, true
	}
	ch := make(chan robotsEntry, 1)
	waiters.PushBack(ch)
	return ch, false
}

func (c *robotsCache) release(origin string, result robotsEntry) {
	c.mu.Lock()
	waiters := c.inflight[origin]
	delete(c.inflight, origin)
	c.mu.Unlock()
	if waiters == nil {
		return
	}
	for waiters.Len() > 0 {
		ch := waiters.PopFront()
		ch <- result
	}
}

func (c *robotsCache) persist(origin string, body []byte) {
	if c.dir == "" {
		return
	}
	_ = os.MkdirAll(c.dir, 0o755)
	_ = os.WriteFile(filepath.Join(c.dir, diskCacheName(origin)), body, 0o644)
}
