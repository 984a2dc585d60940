package app

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"spiderquest/internal/audio"
	"spiderquest/internal/books"
	"spiderquest/internal/clock"
	"spiderquest/internal/content"
	"spiderquest/internal/devtools"
	"spiderquest/internal/games"
	"spiderquest/internal/games/bugcatcher"
	"spiderquest/internal/games/quiz"
	"spiderquest/internal/games/webbuilder"
	"spiderquest/internal/render"
	"spiderquest/internal/shell"
	"spiderquest/internal/state"
	"spiderquest/internal/telemetry"
	"spiderquest/internal/ui"

	"github.com/google/uuid"
)

const settingAudio = "audio"

// App is the mode controller. Every method except the dev HTTP handlers runs
// on the UI update loop.
type App struct {
	cfg Config

	logger   *telemetry.JSONLogger
	store    Store
	progress *state.ProgressStore
	record   state.ProgressRecord
	audio    Audio
	books    Books
	clock    clock.Provider
	sched    *clock.Scheduler
	rand     games.Rand
	pack     content.Pack
	view     ui.View
	demo     *devtools.Manager

	session Session
	modes   map[Mode]games.Game
	active  games.Game
	scope   *clock.Scope
	closed  bool

	demoQueue chan string
	devMu     sync.Mutex
	devServer *http.Server
	devState  struct {
		State     string
		Demo      string
		RenderSeq int
		Rendered  bool
		Pending   bool
		Error     string
	}
}

// Deps are the collaborators New builds from Config. Tests supply their own.
type Deps struct {
	Store   Store
	Audio   Audio
	Books   Books
	Clock   clock.Provider
	Rand    games.Rand
	View    ui.View
	Logger  *telemetry.JSONLogger
	Content content.Pack
}

func New(cfg Config) (*App, error) {
	store, err := openStore(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	logger, err := telemetry.NewJSONLogger(cfg.LogPath, cfg.Debug)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	pack, err := content.Load(cfg.ContentPath)
	if err != nil {
		_ = store.Close()
		_ = logger.Close()
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	view := ui.New(ui.Options{
		ASCIIOnly:    cfg.ASCIIOnly,
		Debug:        cfg.Debug,
		StyleVariant: cfg.UI.StyleVariant,
		MotionLevel:  cfg.UI.MotionLevel,
	})

	return newApp(cfg, Deps{
		Store:   store,
		Audio:   openAudio(cfg, store, logger),
		Books:   openBooks(cfg, logger),
		Clock:   clock.Real{},
		Rand:    rand.New(rand.NewSource(seed)),
		View:    view,
		Logger:  logger,
		Content: pack,
	})
}

func openAudio(cfg Config, store Store, logger *telemetry.JSONLogger) *audio.Feedback {
	enabled := true
	if settings, err := store.LoadSettings(context.Background()); err == nil {
		if v, ok := settings[settingAudio]; ok {
			enabled = v != "off"
		}
	}
	switch cfg.Audio {
	case "off":
		return audio.NewFeedback(audio.NopSink(), false)
	case "on":
		enabled = true
	}
	sink, err := audio.NewSpeakerSink()
	if err != nil {
		logger.Info("audio.unavailable", "error", err.Error())
		return audio.NewFeedback(audio.NopSink(), enabled)
	}
	return audio.NewFeedback(sink, enabled)
}

func openBooks(cfg Config, logger *telemetry.JSONLogger) *books.Library {
	cacheDir := filepath.Join(cfg.DataDir, "cache")
	opener := books.SystemOpener{Exited: func(path string, err error) {
		if err != nil {
			logger.Info("books.viewer_exited", "path", path, "error", err.Error())
		}
	}}
	if cfg.BundleDir == "" {
		return books.NewLibrary(nil, opener, cacheDir)
	}
	fetcher := shell.NewFetcher(shell.DirOrigin{Root: cfg.BundleDir})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fetcher.Install(ctx); err != nil {
		logger.Info("shell.install_failed", "bundle", cfg.BundleDir, "error", err.Error())
	} else {
		logger.Info("shell.installed", "cache", shell.CacheName, "assets", fetcher.Len())
	}
	return books.NewLibrary(fetcher, opener, cacheDir)
}

func newApp(cfg Config, deps Deps) (*App, error) {
	if deps.Store == nil || deps.View == nil {
		return nil, errors.New("app: store and view are required")
	}
	if deps.Clock == nil {
		deps.Clock = clock.Real{}
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(1))
	}
	if deps.Audio == nil {
		deps.Audio = audio.NewFeedback(audio.NopSink(), false)
	}
	if deps.Books == nil {
		deps.Books = books.NewLibrary(nil, nil, "")
	}
	if len(deps.Content.Questions) == 0 {
		pack, err := content.Default()
		if err != nil {
			return nil, err
		}
		deps.Content = pack
	}

	a := &App{
		cfg:       cfg,
		logger:    deps.Logger,
		store:     deps.Store,
		progress:  state.NewProgressStore(deps.Store, deps.Logger),
		audio:     deps.Audio,
		books:     deps.Books,
		clock:     deps.Clock,
		sched:     clock.NewScheduler(deps.Clock),
		rand:      deps.Rand,
		pack:      deps.Content,
		view:      deps.View,
		demo:      devtools.NewManager(),
		demoQueue: make(chan string, 8),
		modes: map[Mode]games.Game{
			ModeWebBuilder: webbuilder.New(),
			ModeBugCatcher: bugcatcher.New(),
			ModeQuiz:       quiz.New(deps.Content.Questions),
		},
	}
	a.record = a.progress.Load(context.Background())
	a.session = Session{
		ID:           uuid.NewString(),
		StartedAt:    a.clock.Now(),
		EarnedBadges: append([]string{}, a.record.Badges...),
	}

	a.view.SetAbout(a.pack.AboutMD)
	a.view.SetController(a)

	start, ok := parseMode(cfg.StartMode)
	if !ok || start == ModeNone {
		start = ModeWebBuilder
	}
	a.SwitchTo(start)
	return a, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("app.start", "session", a.session.ID, "data_dir", a.cfg.DataDir, "content", a.pack.Path)

	if a.cfg.Dev {
		if err := a.startDevHTTP(); err != nil {
			return err
		}
	}
	if a.cfg.DemoScenario != "" {
		if _, err := a.applyDemoScenario(ctx, a.cfg.DemoScenario); err != nil {
			a.logger.Error("dev.demo.initial_failed", "demo", a.cfg.DemoScenario, "error", err.Error())
		}
	} else if a.cfg.Dev {
		a.setDevState(string(a.session.ActiveMode), "")
	}

	return a.view.Run()
}

// Stop asks the running UI to exit. It may be called from any goroutine.
func (a *App) Stop() {
	a.view.Stop()
}

// Close accounts the final play time and releases every resource. It is
// safe to call more than once.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if a.devServer != nil {
		_ = a.devServer.Shutdown(ctx)
	}
	a.accountElapsed(ctx, a.clock.Now())
	a.scope.Cancel()
	a.scope = nil
	_ = a.audio.Close()
	_ = a.store.Close()
	a.logger.Info("app.close", "session", a.session.ID, "play_seconds", a.record.TotalPlaySeconds)
	_ = a.logger.Close()
}

// SwitchTo activates mode, ending the current one. Selecting the active mode
// restarts it.
func (a *App) SwitchTo(mode Mode) {
	ctx := context.Background()
	a.accountElapsed(ctx, a.clock.Now())
	a.scope.Cancel()
	a.scope = nil
	a.active = nil

	from := a.session.ActiveMode
	a.session.ActiveMode = mode
	a.session.Tip = a.drawTip()
	a.logger.Info("mode.switch", "from", string(from), "to", string(mode))
	if mode == ModeNone {
		return
	}
	a.startMode(mode)
}

func (a *App) startMode(mode Mode) {
	g, ok := a.modes[mode]
	if !ok {
		return
	}
	a.scope = a.sched.NewScope()
	a.active = g
	g.Init(games.Env{Host: a, Sounds: a.audio, Rand: a.rand, Timers: a.scope})
}

// accountElapsed folds whole seconds since StartedAt into the record, mirrors
// the session badges and saves.
func (a *App) accountElapsed(ctx context.Context, now time.Time) {
	if elapsed := int(now.Sub(a.session.StartedAt) / time.Second); elapsed > 0 {
		a.record.TotalPlaySeconds += elapsed
	}
	a.record.Badges = append([]string{}, a.session.EarnedBadges...)
	a.save(ctx)
	a.session.StartedAt = now
}

// ResetAll wipes progress and restarts the active mode (Web Builder when none
// is active). Running timers are cancelled before anything else.
func (a *App) ResetAll() {
	ctx := context.Background()
	a.scope.Cancel()
	a.scope = nil
	a.active = nil

	rec, err := a.progress.Reset(ctx)
	if err != nil {
		a.logger.Error("progress.reset_failed", "error", err.Error())
		rec = state.Zero()
	}
	a.record = rec
	a.session.EarnedBadges = []string{}
	a.audio.Fail()
	a.session.StartedAt = a.clock.Now()

	mode := a.session.ActiveMode
	if mode == ModeNone {
		mode = ModeWebBuilder
	}
	a.session.ActiveMode = mode
	a.session.Tip = a.drawTip()
	a.logger.Info("progress.reset", "mode", string(mode))
	a.startMode(mode)
}

// AwardBadge records name once per profile. It reports whether the badge was
// newly earned.
func (a *App) AwardBadge(name string) bool {
	if !a.session.addBadge(name) {
		return false
	}
	if !a.record.HasBadge(name) {
		a.record.Badges = append(a.record.Badges, name)
	}
	a.save(context.Background())
	a.audio.Success()
	a.logger.Info("badge.awarded", "badge", name, "mode", string(a.session.ActiveMode))
	return true
}

func (a *App) RecordBugScore(score int) {
	a.record.BugCatchScores = append(a.record.BugCatchScores, score)
	a.save(context.Background())
	a.logger.Info("bugs.round_over", "score", score)
}

func (a *App) RecordQuiz(correct int) {
	a.record.QuizzesCompleted++
	a.record.CorrectAnswers += correct
	a.save(context.Background())
	a.logger.Info("quiz.completed", "correct", correct)
}

func (a *App) save(ctx context.Context) {
	if err := a.progress.Save(ctx, a.record); err != nil {
		a.logger.Error("progress.save_failed", "error", err.Error())
	}
}

func (a *App) drawTip() string {
	if len(a.pack.Tips) == 0 {
		return ""
	}
	return a.pack.Tips[a.rand.Intn(len(a.pack.Tips))]
}

// Frame fires every timer due at now.
func (a *App) Frame(now time.Time) {
	a.sched.Advance(now)
}

// ToggleAudio flips the audio switch and remembers it for the next run.
func (a *App) ToggleAudio() bool {
	on := !a.audio.Enabled()
	a.audio.SetEnabled(on)
	value := "off"
	if on {
		value = "on"
	}
	if err := a.store.SaveSettings(context.Background(), map[string]string{settingAudio: value}); err != nil {
		a.logger.Error("settings.save_failed", "key", settingAudio, "error", err.Error())
	}
	a.logger.Info("audio.toggle", "enabled", on)
	return on
}

func (a *App) Session() Session {
	s := a.session
	s.EarnedBadges = append([]string{}, a.session.EarnedBadges...)
	return s
}

func (a *App) Record() state.ProgressRecord {
	rec := a.record
	rec.BugCatchScores = append([]int{}, a.record.BugCatchScores...)
	rec.Badges = append([]string{}, a.record.Badges...)
	return rec
}

// ActiveGame returns the running mode, or nil when none is active.
func (a *App) ActiveGame() games.Game { return a.active }

func (a *App) Dashboard() Dashboard {
	return dashboardFrom(a.record, a.audio.Enabled())
}

// ui.Controller

func (a *App) OnFrame(now time.Time) {
	a.drainDemoQueue()
	a.Frame(now)
}

func (a *App) OnSelectMode(raw string) {
	mode, ok := parseMode(raw)
	if !ok {
		a.logger.Debug("mode.unknown", "mode", raw)
		return
	}
	a.SwitchTo(mode)
}

func (a *App) OnPointerDown(p render.Point) {
	if a.active != nil {
		a.active.PointerDown(p)
	}
}

func (a *App) OnPointerMove(p render.Point) {
	if a.active != nil {
		a.active.PointerMove(p)
	}
}

func (a *App) OnPointerUp(p render.Point) {
	if a.active != nil {
		a.active.PointerUp(p)
	}
}

func (a *App) OnClick(p render.Point) {
	if a.active != nil {
		a.active.Click(p)
	}
}

func (a *App) OnToggleAudio() { a.ToggleAudio() }

func (a *App) OnResetProgress() { a.ResetAll() }

func (a *App) OnOpenBook(id string) error {
	path, err := a.books.Open(context.Background(), id)
	if err != nil {
		a.logger.Error("books.open_failed", "book", id, "error", err.Error())
		return err
	}
	a.logger.Info("books.opened", "book", id, "path", path)
	return nil
}

func (a *App) OnDownloadBook(id string) (string, error) {
	path, err := a.books.Download(context.Background(), id, a.cfg.DownloadDir)
	if err != nil {
		a.logger.Error("books.download_failed", "book", id, "error", err.Error())
		return "", err
	}
	a.logger.Info("books.downloaded", "book", id, "path", path)
	return path, nil
}

func (a *App) OnQuit() {
	a.logger.Info("app.quit", "session", a.session.ID)
}

func (a *App) Snapshot() ui.Snapshot {
	snap := ui.Snapshot{
		Mode:      string(a.session.ActiveMode),
		Tip:       a.session.Tip,
		Badges:    append([]string{}, a.session.EarnedBadges...),
		AudioOn:   a.audio.Enabled(),
		Dashboard: a.Dashboard().viewState(),
	}
	if a.active != nil {
		snap.Scene = a.active.Scene()
	}
	if a.books.Available() {
		for _, b := range books.Catalog {
			snap.Books = append(snap.Books, ui.BookRow{ID: b.ID, Title: b.Title})
		}
	}
	return snap
}

var _ ui.Controller = (*App)(nil)
var _ games.Host = (*App)(nil)
