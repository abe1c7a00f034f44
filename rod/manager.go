// Package rod provides browser-backed fetching. Its snapshots carry
// computed rendering facts baked into data-cm-* attributes, so the
// static extraction pipeline can consume browser knowledge without
// holding a live page.
package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of pages served before the
// browser is recycled.
const DefaultMaxPages = 75

// Manager owns a headless Chrome instance and recycles it after a fixed
// number of pages. Chrome accumulates memory under sustained load and
// never returns to its baseline, so long-running snapshot sessions need
// periodic restarts.
//
// Manager is safe for concurrent use.
type Manager struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	served   int64
	maxPages int64
	mu       sync.Mutex
	closed   atomic.Bool
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithMaxPages sets the recycling threshold. Defaults to DefaultMaxPages.
func WithMaxPages(n int64) ManagerOption {
	return func(m *Manager) {
		m.maxPages = n
	}
}

// NewManager launches a headless Chrome browser. Close must be called
// when the Manager is no longer needed.
func NewManager(opts ...ManagerOption) (*Manager, error) {
	m := &Manager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.launch(); err != nil {
		return nil, err
	}
	return m, nil
}

// Browser returns the current browser, recycling it first when the page
// threshold has been reached. Callers report completed pages with PageDone.
func (m *Manager) Browser() *rod.Browser {
	m.mu.Lock()
	defer m.mu.Unlock()

	if atomic.LoadInt64(&m.served) >= m.maxPages {
		m.recycle()
	}
	return m.browser
}

// PageDone records one served page toward the recycling threshold.
func (m *Manager) PageDone() {
	atomic.AddInt64(&m.served, 1)
}

// Close shuts down the browser. Safe to call multiple times.
func (m *Manager) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shutdown()
}

// launch starts a browser with stability flags.
func (m *Manager) launch() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	m.browser = browser
	m.launcher = lnchr
	return nil
}

// shutdown closes the current browser and launcher. Must be called with
// mu held.
func (m *Manager) shutdown() error {
	var err error
	if m.browser != nil {
		err = m.browser.Close()
		m.browser = nil
	}
	if m.launcher != nil {
		m.launcher.Kill()
		m.launcher = nil
	}
	return err
}

// recycle replaces the browser with a fresh one. The old browser is kept
// when the new launch fails. Must be called with mu held.
func (m *Manager) recycle() {
	oldBrowser := m.browser
	oldLauncher := m.launcher
	m.browser = nil
	m.launcher = nil

	if err := m.launch(); err != nil {
		m.browser = oldBrowser
		m.launcher = oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	atomic.StoreInt64(&m.served, 0)
}

// LauncherPID returns the browser launcher's process ID, for cleanup
// verification in tests.
func (m *Manager) LauncherPID() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.launcher == nil {
		return 0
	}
	return m.launcher.PID()
}
