package mcpserver

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/oastypes"
	"github.com/erraggy/oastypes/analyzer"
	"github.com/erraggy/oastypes/internal/cliutil"
	"github.com/erraggy/oastypes/oaserrors"
	"github.com/erraggy/oastypes/parser"
)

// specInput represents the three ways a document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI 3.x document on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch an OpenAPI 3.x document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline OpenAPI 3.x document content (JSON or YAML)"`
}

// check enforces the one-source rule and the inline size limit.
func (s specInput) check() error {
	count := 0
	for _, v := range []string{s.File, s.URL, s.Content} {
		if v != "" {
			count++
		}
	}
	if count != 1 {
		return fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return &oaserrors.ResourceLimitError{
			ResourceType: "inline content",
			Limit:        cfg.MaxInlineSize,
			Actual:       int64(len(s.Content)),
			Message:      "use file input instead, or set OASTYPES_MAX_INLINE_SIZE",
		}
	}
	return nil
}

// cacheKey identifies a parse of s. Files are keyed by path and modification time so an
// edited file is parsed again; it returns "" when s cannot be cached.
func (s specInput) cacheKey() (key string, ttl time.Duration) {
	switch {
	case s.File != "":
		abs, err := filepath.Abs(s.File)
		if err != nil {
			return "", 0
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", 0
		}
		return fmt.Sprintf("file:%s:%d", abs, info.ModTime().UnixNano()), cfg.CacheFileTTL
	case s.URL != "":
		return "url:" + s.URL, cfg.CacheURLTTL
	case s.Content != "":
		sum := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(sum[:]), cfg.CacheContentTTL
	}
	return "", 0
}

// parse loads the document, consulting the session cache first.
func (s specInput) parse(ctx context.Context) (*parser.ParseResult, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	var (
		key string
		ttl time.Duration
	)
	if cfg.CacheEnabled {
		key, ttl = s.cacheKey()
		if pr := documents.get(key); pr != nil {
			return pr, nil
		}
	}

	opts := []parser.Option{
		parser.WithContext(ctx),
		parser.WithResolveHTTPRefs(cfg.ResolveHTTPRefs),
		parser.WithUserAgent(oastypes.UserAgent()),
		parser.WithLogger(serverLogger()),
	}
	switch {
	case s.File != "":
		opts = append(opts, parser.WithFilePath(s.File))
	case s.URL != "":
		opts = append(opts, parser.WithFilePath(s.URL))
	default:
		opts = append(opts, parser.WithBytes([]byte(s.Content)))
	}
	if client := httpClient(); client != nil {
		opts = append(opts, parser.WithHTTPClient(client))
	}

	pr, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	if key != "" {
		documents.put(key, pr, ttl)
	}
	return pr, nil
}

// analyze parses s and indexes it, limited to groups when any are named.
func (s specInput) analyze(ctx context.Context, groups []string) (*analyzer.Result, error) {
	pr, err := s.parse(ctx)
	if err != nil {
		return nil, err
	}
	return analyzer.AnalyzeWithOptions(
		analyzer.WithParseResult(pr),
		analyzer.WithLimitGroups(groups...),
		analyzer.WithLogger(serverLogger()),
	)
}

// fetch returns the raw bytes of s for tools that parse documents themselves.
func (s specInput) fetch(ctx context.Context) ([]byte, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	switch {
	case s.Content != "":
		return []byte(s.Content), nil
	case s.File != "":
		return os.ReadFile(s.File)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "url", Value: s.URL, Message: "invalid URL", Cause: err}
	}
	req.Header.Set("User-Agent", oastypes.UserAgent())
	client := httpClient()
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", s.URL, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, cfg.MaxInlineSize+1))
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.URL, err)
	}
	if int64(len(data)) > cfg.MaxInlineSize {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "remote document",
			Limit:        cfg.MaxInlineSize,
			Actual:       int64(len(data)),
		}
	}
	return data, nil
}

// httpClient returns the SSRF-safe client unless private addresses are allowed, in which
// case it returns nil and callers use their default.
func httpClient() *http.Client {
	if cfg.AllowPrivateIPs {
		return nil
	}
	return newSafeHTTPClient()
}

func serverLogger() parser.Logger {
	return parser.NewSlogAdapter(slog.Default())
}

// cachedDocument is one parse result held by the session cache.
type cachedDocument struct {
	key     string
	result  *parser.ParseResult
	expires time.Time
}

// documentCache is a size-bounded LRU of parse results with per-entry expiry. Parse
// results are read-only, so a cached result is shared by every tool call that hits it.
type documentCache struct {
	mu      sync.Mutex
	order   *list.List // front is most recently used
	entries map[string]*list.Element
	maxSize int

	sweeping atomic.Bool
}

var documents = newDocumentCache(cfg.CacheMaxSize)

func newDocumentCache(maxSize int) *documentCache {
	return &documentCache{
		order:   list.New(),
		entries: make(map[string]*list.Element),
		maxSize: maxSize,
	}
}

func (c *documentCache) get(key string) *parser.ParseResult {
	if key == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		return nil
	}
	doc := el.Value.(*cachedDocument)
	if time.Now().After(doc.expires) {
		c.order.Remove(el)
		delete(c.entries, key)
		return nil
	}
	c.order.MoveToFront(el)
	return doc.result
}

func (c *documentCache) put(key string, pr *parser.ParseResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc := &cachedDocument{key: key, result: pr, expires: time.Now().Add(ttl)}
	if el, ok := c.entries[key]; ok {
		el.Value = doc
		c.order.MoveToFront(el)
		return
	}
	for c.order.Len() > 0 && c.order.Len() >= c.maxSize {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cachedDocument).key)
	}
	c.entries[key] = c.order.PushFront(doc)
}

// sweep drops expired entries.
func (c *documentCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for key, el := range c.entries {
		if now.After(el.Value.(*cachedDocument).expires) {
			c.order.Remove(el)
			delete(c.entries, key)
		}
	}
}

// startSweeper sweeps every interval until ctx is done. Only one sweeper runs at a time.
func (c *documentCache) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeping.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeping.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

func (c *documentCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.entries = make(map[string]*list.Element)
}

func (c *documentCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// trimList accepts groups given as separate items or comma-separated.
func trimList(items []string) []string {
	return cliutil.SplitList(strings.Join(items, ","))
}
