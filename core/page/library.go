// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package page

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"codeberg.org/docs-ru/docs-ru/core/audit"
	"codeberg.org/docs-ru/docs-ru/core/lrucache"
	"codeberg.org/docs-ru/docs-ru/core/preference"
	"codeberg.org/docs-ru/docs-ru/core/variant"
)

// Options configures a Library.
type Options struct {
	// Dir is the content directory on disk. Required for Watch.
	Dir string
	// FS overrides Dir as the source of pages.
	FS fs.FS

	Renderer *Renderer
	// Cache holds rendered pages. Nil disables caching.
	Cache *lrucache.Cache

	Logger *zerolog.Logger
}

// Library holds every page of the site. It is safe for concurrent use.
type Library struct {
	dir      string
	fsys     fs.FS
	renderer *Renderer
	cache    *lrucache.Cache
	logger   zerolog.Logger

	// mu also orders cache purges against cache fills, so a render of a
	// replaced document never lands in the cache after its purge.
	mu    sync.RWMutex
	pages map[string]*Document

	// watchReady runs once Watch has registered the content tree.
	watchReady func()
}

// NewLibrary returns an empty library; call Load to read the pages.
func NewLibrary(opts Options) (*Library, error) {
	fsys := opts.FS
	if fsys == nil {
		if opts.Dir == "" {
			return nil, ErrLibraryNotConfigured
		}

		fsys = os.DirFS(opts.Dir)
	}

	renderer := opts.Renderer
	if renderer == nil {
		renderer = NewRenderer(nil, 2, 3)
	}

	logger := log.With().Str("sys", "content").Logger()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Library{
		dir:      opts.Dir,
		fsys:     fsys,
		renderer: renderer,
		cache:    opts.Cache,
		logger:   logger,
		pages:    make(map[string]*Document),
	}, nil
}

// Load reads every markdown file concurrently and replaces the page set.
//
// Pages that fail to parse are left out and their errors are combined in the
// returned error; the pages that did parse are installed regardless.
func (l *Library) Load(ctx context.Context) error {
	var files []string

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}

			return nil
		}

		if strings.HasSuffix(p, mdExt) {
			files = append(files, p)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("listing content: %w", err)
	}

	var (
		mu      sync.Mutex
		pages   = make(map[string]*Document, len(files))
		loadErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			doc, err := l.parseFile(file)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				multierr.AppendInto(&loadErr, err)

				return nil
			}

			pages[doc.Path] = doc

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	l.mu.Lock()
	l.pages = pages
	l.purgeCache("")
	l.mu.Unlock()

	l.logger.Info().
		Int("pages", len(pages)).
		Int("errors", len(multierr.Errors(loadErr))).
		Msg("Loaded content")

	return loadErr
}

func (l *Library) parseFile(file string) (*Document, error) {
	p, err := CleanPath(file)
	if err != nil {
		return nil, err
	}

	src, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}

	doc, err := Parse(l.renderer.Markdown, p, src)
	if err != nil {
		return nil, err
	}

	if err := variant.CheckPairs(doc.VariantBlocks()); err != nil {
		l.logger.Warn().
			Str("page", p).
			Err(err).
			Msg("Page has variant blocks without a counterpart")
	}

	return doc, nil
}

// Reload re-reads one page. A page whose file is gone is removed.
func (l *Library) Reload(pagePath string) error {
	doc, err := l.parseFile(fileName(pagePath))
	if errors.Is(err, fs.ErrNotExist) {
		l.Remove(pagePath)

		return nil
	}

	if err != nil {
		return err
	}

	l.mu.Lock()
	l.pages[doc.Path] = doc
	l.purgeCache(doc.Path)
	l.mu.Unlock()

	return nil
}

// Remove drops a page.
func (l *Library) Remove(pagePath string) {
	l.mu.Lock()
	delete(l.pages, pagePath)
	l.purgeCache(pagePath)
	l.mu.Unlock()
}

// Page returns the parsed page at pagePath.
func (l *Library) Page(pagePath string) (*Document, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	doc, ok := l.pages[pagePath]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, pagePath)
	}

	return doc, nil
}

// Paths lists the page paths in lexical order.
func (l *Library) Paths() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]string, 0, len(l.pages))
	for p := range l.pages {
		out = append(out, p)
	}

	slices.Sort(out)

	return out
}

// Render returns pagePath as seen by a reader with prefs, from cache when possible.
func (l *Library) Render(ctx context.Context, pagePath string, prefs variant.Reader) (*Rendered, error) {
	doc, err := l.Page(pagePath)
	if err != nil {
		return nil, err
	}

	key := cacheKey(pagePath, prefs)

	if l.cache != nil {
		if cached, ok := l.cache.Get(key); ok {
			var out Rendered
			if err := json.Unmarshal(cached, &out); err == nil {
				return &out, nil
			}

			l.cache.Remove(key)
		}
	}

	span := audit.Span{Kind: audit.KindRender, URL: pagePath}
	span.Begin(ctx)

	out, err := l.renderer.Render(doc, prefs)

	span.End()

	if err != nil {
		return nil, err
	}

	l.storeRendered(doc, key, out)

	return out, nil
}

// storeRendered caches out unless doc has been replaced or removed since
// the render started.
func (l *Library) storeRendered(doc *Document, key string, out *Rendered) {
	if l.cache == nil {
		return
	}

	encoded, err := json.Marshal(out)
	if err != nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.pages[doc.Path] != doc {
		return
	}

	l.cache.Add(key, encoded)
}

// cacheKey is "<path>|" followed by one 0/1 digit per preference key.
func cacheKey(pagePath string, prefs variant.Reader) string {
	var b strings.Builder

	b.WriteString(pagePath)
	b.WriteByte('|')

	for _, key := range preference.Keys() {
		if prefs.Get(key) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}

	return b.String()
}

func (l *Library) purgeCache(pagePath string) {
	if l.cache == nil {
		return
	}

	if pagePath == "" {
		l.cache.Purge()

		return
	}

	l.cache.RemovePrefix(pagePath + "|")
}

// Resolve finds the page a request path refers to, trying the directory
// index as well: "guide" resolves to "guide/index" when only that exists.
func (l *Library) Resolve(pagePath string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, ok := l.pages[pagePath]; ok {
		return pagePath, true
	}

	if index := pagePath + "/index"; l.pages[index] != nil {
		return index, true
	}

	return "", false
}
