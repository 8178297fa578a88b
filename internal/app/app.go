package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/chordedit/chord/internal/config"
	"github.com/chordedit/chord/internal/dispatcher"
	"github.com/chordedit/chord/internal/input"
	"github.com/chordedit/chord/internal/input/keymap"
	"github.com/chordedit/chord/internal/pane"
)

// ErrQuit is returned by Run on a normal user-initiated exit.
var ErrQuit = errors.New("quit")

// Options are the command line options.
type Options struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string

	// KeymapPath overrides the keymap file named in the config.
	KeymapPath string

	// Files are opened into buffers at startup; the last one is shown.
	Files []string
}

// App wires the dispatcher to a terminal screen and owns the event loop.
type App struct {
	cfg    config.Config
	disp   *dispatcher.Dispatcher
	screen tcell.Screen

	keymapPath string
	watcher    *keymap.Watcher

	// reloaded hands a freshly loaded binding table from the watcher
	// goroutine to the event loop.
	reloadMu sync.Mutex
	reloaded *keymap.Table

	notice string

	shutdownOnce sync.Once
}

// New builds the application from its options and configuration.
func New(opts Options) (*App, error) {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		if p, err := config.DefaultPath(); err == nil {
			cfgPath = p
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	cancel, err := cfg.CancelChord()
	if err != nil {
		return nil, err
	}
	inputCfg := input.Config{
		Cancel:     cancel,
		SelfInsert: cfg.SelfInsert,
	}

	disp, err := dispatcher.New(dispatcher.Config{
		Input:                 &inputCfg,
		ApplyExactOnAmbiguity: cfg.ApplyExactOnAmbiguity,
		SequenceTimeout:       cfg.SequenceTimeout(),
	})
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, disp: disp}
	disp.SetNoticeFunc(func(text string) { a.notice = text })

	a.keymapPath = cfg.KeymapPath
	if opts.KeymapPath != "" {
		a.keymapPath = opts.KeymapPath
	}
	if a.keymapPath != "" {
		table, err := keymap.LoadTableFile(a.keymapPath)
		if err != nil {
			return nil, fmt.Errorf("keymap: %w", err)
		}
		disp.SetTable(table)
	}

	if cfg.CommandDir != "" {
		if err := disp.Runner().LoadDir(cfg.CommandDir); err != nil {
			return nil, fmt.Errorf("commands: %w", err)
		}
	}

	for _, path := range opts.Files {
		if err := disp.OpenFile(path); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Dispatcher exposes the dispatcher, mainly for tests.
func (a *App) Dispatcher() *dispatcher.Dispatcher { return a.disp }

// Run initializes the terminal and drives the event loop until exit.
func (a *App) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	a.screen = screen
	screen.EnableMouse()

	a.disp.SetWakeFunc(func() {
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	})

	if a.keymapPath != "" && a.cfg.WatchKeymap {
		if err := a.startKeymapWatcher(); err != nil {
			return err
		}
	}

	defer a.Shutdown()

	w, h := screen.Size()
	a.disp.SetFrame(frameRect(w, h))

	for {
		a.draw()

		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			w, h := ev.Size()
			a.disp.SetFrame(frameRect(w, h))
			screen.Sync()

		case *tcell.EventKey:
			a.handleKey(ev)

		case *tcell.EventMouse:
			if ev.Buttons()&tcell.Button1 != 0 {
				x, y := ev.Position()
				if id, ok := a.disp.Tree().LeafAt(pane.Point{X: x, Y: y}); ok {
					_ = a.disp.Tree().SetFocus(id)
				}
			}

		case *tcell.EventInterrupt:
			a.disp.DrainMessages()
			a.applyReloadedKeymap()
		}

		if a.disp.Done() {
			return ErrQuit
		}
	}
}

// handleKey dispatches one key event. Notices are one-shot: whatever the
// previous event reported is cleared before the dispatcher can post a new
// one.
func (a *App) handleKey(ev *tcell.EventKey) {
	a.notice = ""
	c, ok := translateKey(ev)
	if !ok {
		return
	}
	if err := a.disp.HandleKey(c); err != nil {
		a.notice = err.Error()
	}
}

// frameRect reserves the bottom row for the status line.
func frameRect(w, h int) pane.Rect {
	if h < 2 {
		return pane.Rect{Width: w, Height: h}
	}
	return pane.Rect{Width: w, Height: h - 1}
}

func (a *App) startKeymapWatcher() error {
	w, err := keymap.WatchFile(a.keymapPath,
		func(table *keymap.Table) {
			a.reloadMu.Lock()
			a.reloaded = table
			a.reloadMu.Unlock()
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		},
		func(err error) {
			_ = a.disp.Queue().TrySend(
				keymapReloadError(a.keymapPath, err))
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		})
	if err != nil {
		return err
	}
	a.watcher = w
	return nil
}

// applyReloadedKeymap swaps in a watcher-delivered table on the dispatch
// thread.
func (a *App) applyReloadedKeymap() {
	a.reloadMu.Lock()
	table := a.reloaded
	a.reloaded = nil
	a.reloadMu.Unlock()

	if table != nil {
		a.disp.SetTable(table)
		a.notice = "Keymap reloaded"
	}
}

// Shutdown releases the terminal and background resources. Safe to call
// more than once.
func (a *App) Shutdown() {
	a.shutdownOnce.Do(func() {
		if a.watcher != nil {
			_ = a.watcher.Close()
		}
		_ = a.disp.Queue().Close()
		if a.screen != nil {
			a.screen.Fini()
		}
	})
}
