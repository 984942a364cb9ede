package redcore

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestParseRobotsTxtSpecificUserAgent(t *testing.T) {
	body := []byte(`
User-agent: *
Disallow: /private

User-agent: redcore-bot
Disallow: /private
Allow: /private/ok
`)
	rules := parseRobotsTxt(body, "redcore-bot")
	if rules.permits("/private/secret") {
		t.Error("expected /private/secret to be disallowed")
	}
	if !rules.permits("/private/ok") {
		t.Error("expected the more specific Allow to win")
	}
	if !rules.permits("/public") {
		t.Error("expected /public to be permitted")
	}
}

func TestParseRobotsTxtFallsBackToWildcard(t *testing.T) {
	body := []byte("User-agent: *\nDisallow: /admin\n")
	rules := parseRobotsTxt(body, "redcore-bot")
	if rules.permits("/admin/panel") {
		t.Error("expected /admin/panel to be disallowed under the wildcard record")
	}
}

func TestParseRobotsTxtIgnoresComments(t *testing.T) {
	body := []byte("# comment\nUser-agent: *\nDisallow: /x # trailing comment\n")
	rules := parseRobotsTxt(body, "redcore-bot")
	if rules.permits("/x/y") {
		t.Error("expected /x/y to be disallowed despite the trailing comment")
	}
}

func TestUrlToOrigin(t *testing.T) {
	got, err := urlToOrigin("https://example.com:8443/a/b?q=1")
	if err != nil {
		t.Fatalf("urlToOrigin() error = %v", err)
	}
	if got != "https://example.com:8443" {
		t.Errorf("urlToOrigin() = %q, want https://example.com:8443", got)
	}
	if _, err := urlToOrigin("not a uri"); err == nil {
		t.Error("expected error for a URI with no scheme/host")
	}
}

func TestRobotsCacheFetchCachesResult(t *testing.T) {
	c := newRobotsCache(16, "", time.Hour)
	calls := 0
	fetchFn := func(origin string) ([]byte, error) {
		calls++
		return []byte("User-agent: *\nDisallow: /blocked\n"), nil
	}

	allowed, err := c.Fetch("https://example.com", "redcore-bot", "/blocked", fetchFn)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if allowed {
		t.Error("expected /blocked to be disallowed")
	}

	allowed2, err := c.Fetch("https://example.com", "redcore-bot", "/ok", fetchFn)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !allowed2 {
		t.Error("expected /ok to be allowed")
	}
	if calls != 1 {
		t.Errorf("fetchFn called %d times, want 1 (second lookup should hit cache)", calls)
	}
}

func TestRobotsCacheFetchFailsOpen(t *testing.T) {
	c := newRobotsCache(16, "", time.Hour)
	fetchErr := errors.New("connection refused")
	allowed, err := c.Fetch("https://example.com", "redcore-bot", "/anything", func(string) ([]byte, error) {
		return nil, fetchErr
	})
	if err == nil {
		t.Fatal("expected an error to be returned")
	}
	if !allowed {
		t.Error("expected fail-open (allowed=true) when robots.txt can't be fetched")
	}
	var robotsErr *RobotsTxtError
	if !errors.As(err, &robotsErr) {
		t.Fatalf("error is %T, want *RobotsTxtError", err)
	}
}

func TestRobotsCachePersistsUnderSHA1Name(t *testing.T) {
	dir := t.TempDir()
	c := newRobotsCache(16, dir, time.Hour)
	_, err := c.Fetch("https://example.com", "redcore-bot", "/x", func(string) ([]byte, error) {
		return []byte("User-agent: *\nDisallow: /x\n"), nil
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	want := diskCacheName("https://example.com")
	if _, err := os.Stat(filepath.Join(dir, want)); err != nil {
		t.Errorf("expected a cache file named %q, got error: %v", want, err)
	}
}

func TestRobotsCacheReadsDiskBeforeNetwork(t *testing.T) {
	dir := t.TempDir()
	origin := "https://example.com"
	if err := os.WriteFile(filepath.Join(dir, diskCacheName(origin)), []byte("User-agent: *\nDisallow: /from-disk\n"), 0o644); err != nil {
		t.Fatalf("seeding disk cache: %v", err)
	}

	c := newRobotsCache(16, dir, time.Hour)
	calls := 0
	allowed, err := c.Fetch(origin, "redcore-bot", "/from-disk", func(string) ([]byte, error) {
		calls++
		return []byte("User-agent: *\n"), nil
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if allowed {
		t.Error("expected /from-disk to be disallowed per the pre-seeded disk cache")
	}
	if calls != 0 {
		t.Errorf("fetchFn called %d times, want 0 (disk cache should have been consulted first)", calls)
	}
}

func TestRobotsCacheIgnoresStaleDiskEntry(t *testing.T) {
	dir := t.TempDir()
	origin := "https://example.com"
	path := filepath.Join(dir, diskCacheName(origin))
	if err := os.WriteFile(path, []byte("User-agent: *\nDisallow: /stale\n"), 0o644); err != nil {
		t.Fatalf("seeding disk cache: %v", err)
	}
	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("backdating disk cache mtime: %v", err)
	}

	c := newRobotsCache(16, dir, 30*time.Minute)
	calls := 0
	allowed, err := c.Fetch(origin, "redcore-bot", "/stale", func(string) ([]byte, error) {
		calls++
		return []byte("User-agent: *\n"), nil
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !allowed {
		t.Error("expected the stale disk entry to be ignored, falling through to the network result")
	}
	if calls != 1 {
		t.Errorf("fetchFn called %d times, want 1 (stale disk entry must not be used)", calls)
	}
}

func TestRobotsCacheCoalescesConcurrentLookups(t *testing.T) {
	c := newRobotsCache(16, "", time.Hour)
	var calls int32
	var mu sync.Mutex
	release := make(chan struct{})

	fetchFn := func(origin string) ([]byte, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-release
		return []byte("User-agent: *\nDisallow: /x\n"), nil
	}

	const n = 5
	var wg sync.WaitGroup
	results := make([]bool, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			allowed, err := c.Fetch("https://example.com", "redcore-bot", "/x", fetchFn)
			if err != nil {
				t.Errorf("Fetch() error = %v", err)
			}
			results[i] = allowed
		}(i)
	}

	// give every goroutine a chance to register as a follower before the
	// leader's fetchFn is allowed to complete
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("fetchFn called %d times, want exactly 1 (concurrent lookups should coalesce)", calls)
	}
	for i, allowed := range results {
		if allowed {
			t.Errorf("results[%d] = true, want false (path disallowed)", i)
		}
	}
}
