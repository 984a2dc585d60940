package ui

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"spiderquest/internal/render"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	clog "github.com/charmbracelet/log"
)

type frameMsg time.Time
type animateMsg time.Time

const framePeriod = time.Second / 60

type gameKeyMap struct {
	Web       key.Binding
	Bugs      key.Binding
	Quiz      key.Binding
	Dashboard key.Binding
	Books     key.Binding
	Audio     key.Binding
	Reset     key.Binding
	About     key.Binding
	Quit      key.Binding
}

func (k gameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Web, k.Bugs, k.Quiz, k.Dashboard, k.Books, k.Audio, k.Reset, k.About, k.Quit}
}

func (k gameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Web, k.Bugs, k.Quiz}, {k.Dashboard, k.Books, k.Audio, k.Reset}, {k.About, k.Quit}}
}

type Root struct {
	theme        Theme
	ascii        bool
	debug        bool
	ctrl         Controller
	styleVariant string
	motionLevel  string

	mu      sync.Mutex
	program *tea.Program
	running bool

	layout LayoutMode
	cols   int
	rows   int

	snap        Snapshot
	statusFlash string
	aboutMD     string

	dashboardOpen bool
	booksOpen     bool
	confirmOpen   bool
	aboutOpen     bool
	alertTitle    string
	alertText     string

	confirmIndex int
	booksIndex   int

	help       help.Model
	keymap     gameKeyMap
	badgeBar   progress.Model
	markdown   *glamour.TermRenderer
	logger     *clog.Logger
	overlayPos float64
	overlayVel float64
	spring     harmonica.Spring

	lastInputEvent string
}

type Options struct {
	ASCIIOnly    bool
	Debug        bool
	StyleVariant string
	MotionLevel  string
}

func New(opts Options) *Root {
	logger := clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "spiderquest-ui", Level: clog.WarnLevel})
	if opts.Debug {
		logger.SetLevel(clog.DebugLevel)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(60),
	)
	if err != nil {
		renderer = nil
	}

	h := help.New()
	h.Styles = help.DefaultDarkStyles()
	motionLevel := normalizeMotionLevel(opts.MotionLevel)
	styleVariant := normalizeStyleVariant(opts.StyleVariant)
	spring := harmonica.NewSpring(harmonica.FPS(60), 10.0, 0.8)
	switch motionLevel {
	case "reduced":
		spring = harmonica.NewSpring(harmonica.FPS(30), 9.0, 0.92)
	case "off":
		spring = harmonica.NewSpring(harmonica.FPS(60), 1000.0, 1.0)
	}
	badgeBar := progress.New(
		progress.WithWidth(20),
		progress.WithColors(lipgloss.Color("#6C5CE7"), lipgloss.Color("#55EFC4")),
		progress.WithScaled(true),
	)

	r := &Root{
		theme:        ThemeForVariant(styleVariant),
		ascii:        opts.ASCIIOnly,
		debug:        opts.Debug,
		styleVariant: styleVariant,
		motionLevel:  motionLevel,
		layout:       LayoutMedium,
		cols:         100,
		rows:         32,
		help:         h,
		badgeBar:     badgeBar,
		markdown:     renderer,
		logger:       logger,
		spring:       spring,
	}
	r.keymap = gameKeyMap{
		Web:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "Web")),
		Bugs:      key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "Bugs")),
		Quiz:      key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "Quiz")),
		Dashboard: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "Dashboard")),
		Books:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "Books")),
		Audio:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "Audio")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Reset")),
		About:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "About")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "Quit")),
	}
	return r
}

func (r *Root) Init() tea.Cmd {
	return frameTickCmd()
}

func (r *Root) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("update", rec, msg)
			model = r
			cmd = nil
			if _, ok := msg.(frameMsg); ok {
				cmd = frameTickCmd()
			}
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.cols = msg.Width
		r.rows = msg.Height
		r.layout = DetermineLayoutMode(r.cols, r.rows)
		return r, nil
	case frameMsg:
		if r.ctrl != nil {
			r.ctrl.OnFrame(time.Time(msg))
		}
		r.refresh()
		return r, frameTickCmd()
	case animateMsg:
		target := r.overlayTarget()
		r.overlayPos, r.overlayVel = r.spring.Update(r.overlayPos, r.overlayVel, target)
		if r.shouldAnimate(target) {
			return r, animateTickCmd()
		}
		r.overlayPos = target
		r.overlayVel = 0
		return r, nil
	case tea.MouseClickMsg:
		return r.handleMouseClick(msg)
	case tea.MouseMotionMsg:
		return r.handleMouseMotion(msg)
	case tea.MouseReleaseMsg:
		return r.handleMouseRelease(msg)
	case tea.KeyPressMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *Root) View() (view tea.View) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("view", rec, nil)
			width := max(1, r.cols)
			msg := "UI recovered from a rendering panic. Check logs."
			if r.statusFlash == "" {
				r.statusFlash = "Recovered UI panic"
			}
			view = tea.NewView(r.theme.Fail.Width(width).Render(trimForWidth(msg, max(1, width-1))))
		}
	}()

	if r.cols < 1 {
		r.cols = 100
	}
	if r.rows < 1 {
		r.rows = 32
	}

	var base string
	if r.layout == LayoutTooSmall {
		base = r.renderTooSmall()
	} else {
		base = r.renderPlaying()
		if spec, ok := r.overlaySpec(r.topOverlay()); ok {
			panel := r.drawPanel(spec.title, spec.lines, spec.width, spec.height)
			base = composeOverlayAt(base, panel, r.cols, r.rows, spec.startRow, spec.startCol)
		}
	}
	v := tea.NewView(base)
	v.AltScreen = true
	v.MouseMode = r.currentMouseMode()
	return v
}

func (r *Root) Run() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	p := tea.NewProgram(r)
	r.program = p
	r.running = true
	r.mu.Unlock()

	_, err := p.Run()

	r.mu.Lock()
	r.program = nil
	r.running = false
	r.mu.Unlock()
	return err
}

// Stop asks a running program to exit. It must not be called from the
// update loop; return tea.Quit there instead.
func (r *Root) Stop() {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}

func (r *Root) SetController(c Controller) {
	r.ctrl = c
	r.refresh()
}

// The setters below run on the update loop or before Run.

func (r *Root) SetDashboardOpen(open bool) {
	r.dashboardOpen = open
}

func (r *Root) SetBooksOpen(open bool) {
	r.booksOpen = open
	r.booksIndex = 0
}

func (r *Root) SetAbout(markdown string) {
	r.aboutMD = markdown
}

func (r *Root) refresh() {
	if r.ctrl == nil {
		return
	}
	r.snap = r.ctrl.Snapshot()
}

func (r *Root) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	r.recordInputEvent(fmt.Sprintf("key:%v mod:%v text:%q", msg.Code, msg.Mod, msg.Text))

	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return r.quit()
	}
	if r.overlayActive() {
		return r.handleOverlayKey(msg)
	}

	switch {
	case key.Matches(msg, r.keymap.Web):
		r.selectMode(ModeWebBuilder)
	case key.Matches(msg, r.keymap.Bugs):
		r.selectMode(ModeBugCatcher)
	case key.Matches(msg, r.keymap.Quiz):
		r.selectMode(ModeQuiz)
	case key.Matches(msg, r.keymap.Dashboard):
		return r, r.openDashboard()
	case key.Matches(msg, r.keymap.Books):
		r.SetBooksOpen(true)
	case key.Matches(msg, r.keymap.Audio):
		r.toggleAudio()
	case key.Matches(msg, r.keymap.Reset):
		r.openConfirm()
	case key.Matches(msg, r.keymap.About):
		r.aboutOpen = true
	case key.Matches(msg, r.keymap.Quit):
		return r.quit()
	}
	return r, nil
}

func (r *Root) quit() (tea.Model, tea.Cmd) {
	if r.ctrl != nil {
		r.ctrl.OnQuit()
	}
	return r, tea.Quit
}

func (r *Root) selectMode(mode string) {
	if r.ctrl == nil {
		return
	}
	r.ctrl.OnSelectMode(mode)
	r.refresh()
}

func (r *Root) toggleAudio() {
	if r.ctrl == nil {
		return
	}
	r.ctrl.OnToggleAudio()
	r.refresh()
	state := "off"
	if r.snap.AudioOn {
		state = "on"
	}
	r.statusFlash = "Audio " + state
}

func (r *Root) openDashboard() tea.Cmd {
	r.refresh()
	r.dashboardOpen = true
	return r.animateIfNeeded()
}

func (r *Root) openConfirm() {
	r.confirmOpen = true
	r.confirmIndex = 0
}

func (r *Root) showAlert(title, text string) {
	r.alertTitle = title
	r.alertText = text
}

func (r *Root) handleOverlayKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch r.topOverlay() {
	case "alert":
		switch k {
		case "enter", "esc", "space", "q":
			r.alertTitle, r.alertText = "", ""
		}
	case "confirm":
		switch k {
		case "left", "right", "tab", "h", "l":
			r.confirmIndex = 1 - r.confirmIndex
		case "y":
			r.confirmReset()
		case "n", "esc", "q":
			r.confirmOpen = false
		case "enter":
			if r.confirmIndex == 1 {
				r.confirmReset()
			} else {
				r.confirmOpen = false
			}
		}
	case "about":
		switch k {
		case "enter", "esc", "?", "q":
			r.aboutOpen = false
		}
	case "books":
		items := r.bookActions()
		switch k {
		case "up", "k":
			r.booksIndex = wrapIndex(r.booksIndex-1, len(items))
		case "down", "j":
			r.booksIndex = wrapIndex(r.booksIndex+1, len(items))
		case "enter":
			if r.booksIndex < len(items) {
				r.activateBookAction(items[r.booksIndex])
			}
		case "esc", "b", "q":
			r.booksOpen = false
		}
	case "dashboard":
		switch k {
		case "m", "a":
			r.toggleAudio()
		case "r":
			r.openConfirm()
		case "b":
			r.SetBooksOpen(true)
		case "esc", "d", "q":
			r.dashboardOpen = false
			return r, r.animateIfNeeded()
		}
	}
	return r, nil
}

func (r *Root) confirmReset() {
	r.confirmOpen = false
	if r.ctrl != nil {
		r.ctrl.OnResetProgress()
	}
	r.refresh()
	r.showAlert("Dashboard", "Progress reset.")
}

type bookAction struct {
	bookID   string
	download bool
	label    string
}

func (r *Root) bookActions() []bookAction {
	out := make([]bookAction, 0, len(r.snap.Books)*2)
	for _, b := range r.snap.Books {
		out = append(out,
			bookAction{bookID: b.ID, label: "Open " + b.Title},
			bookAction{bookID: b.ID, download: true, label: "Download " + b.Title},
		)
	}
	return out
}

func (r *Root) activateBookAction(a bookAction) {
	if r.ctrl == nil {
		return
	}
	if a.download {
		path, err := r.ctrl.OnDownloadBook(a.bookID)
		if err != nil {
			r.showAlert("Books", "Download failed: "+err.Error())
			return
		}
		r.showAlert("Books", "Saved to "+path)
		return
	}
	if err := r.ctrl.OnOpenBook(a.bookID); err != nil {
		r.showAlert("Books", "Could not open the book viewer. Try Download instead.\n\n"+err.Error())
		return
	}
	r.statusFlash = "Opened " + a.bookID + " book"
}

func (r *Root) surfacePoint(x, y int) render.Point {
	c := canvasFor(r.cols, r.rows)
	return render.Mapper{Cols: c.W, Rows: c.H}.ToSurface(x-c.X, y-c.Y)
}

func (r *Root) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	m := msg.Mouse()
	r.recordInputEvent(fmt.Sprintf("mouse_click:%d,%d button:%v", m.X, m.Y, m.Button))
	if m.Button != tea.MouseLeft || r.layout == LayoutTooSmall {
		return r, nil
	}
	if r.overlayActive() {
		return r.handleOverlayMouseClick(m.X, m.Y)
	}
	if m.Y == 0 {
		return r.handleHeaderClick(m.X)
	}
	if !canvasFor(r.cols, r.rows).contains(m.X, m.Y) || r.ctrl == nil {
		return r, nil
	}
	p := r.surfacePoint(m.X, m.Y)
	r.ctrl.OnPointerDown(p)
	r.ctrl.OnClick(p)
	r.refresh()
	return r, nil
}

func (r *Root) handleMouseMotion(msg tea.MouseMotionMsg) (tea.Model, tea.Cmd) {
	m := msg.Mouse()
	if r.overlayActive() || r.ctrl == nil || r.layout == LayoutTooSmall {
		return r, nil
	}
	r.ctrl.OnPointerMove(r.surfacePoint(m.X, m.Y))
	return r, nil
}

// Releases always reach the mode, even outside the canvas or under an
// overlay, so a drag always ends.
func (r *Root) handleMouseRelease(msg tea.MouseReleaseMsg) (tea.Model, tea.Cmd) {
	m := msg.Mouse()
	r.recordInputEvent(fmt.Sprintf("mouse_release:%d,%d", m.X, m.Y))
	if r.ctrl == nil {
		return r, nil
	}
	r.ctrl.OnPointerUp(r.surfacePoint(m.X, m.Y))
	r.refresh()
	return r, nil
}

func (r *Root) handleHeaderClick(x int) (tea.Model, tea.Cmd) {
	for _, span := range tabSpans() {
		if x < span.start || x >= span.end {
			continue
		}
		switch span.id {
		case "dashboard":
			return r, r.openDashboard()
		case "books":
			r.SetBooksOpen(true)
		default:
			r.selectMode(span.id)
		}
		return r, nil
	}
	return r, nil
}

func (r *Root) handleOverlayMouseClick(x, y int) (tea.Model, tea.Cmd) {
	top := r.topOverlay()
	spec, ok := r.overlaySpec(top)
	if !ok {
		return r, nil
	}
	inside := x >= spec.startCol && x < spec.startCol+spec.width && y >= spec.startRow && y < spec.startRow+spec.height
	switch top {
	case "alert", "about":
		r.alertTitle, r.alertText = "", ""
		if top == "about" {
			r.aboutOpen = false
		}
	case "books":
		if !inside {
			r.booksOpen = false
			return r, nil
		}
		idx := y - spec.startRow - 1 - spec.itemOffset
		items := r.bookActions()
		if idx >= 0 && idx < len(items) {
			r.booksIndex = idx
			r.activateBookAction(items[idx])
		}
	case "dashboard":
		if !inside {
			r.dashboardOpen = false
			return r, r.animateIfNeeded()
		}
	}
	return r, nil
}

func (r *Root) renderTooSmall() string {
	lines := []string{
		"Spider Quest needs a bigger window.",
		fmt.Sprintf("Current: %dx%d  Needed: %dx%d", r.cols, r.rows, minCols, minRows),
	}
	out := make([]string, r.rows)
	for i := range out {
		if i < len(lines) {
			out[i] = trimForWidth(lines[i], r.cols)
		}
	}
	return strings.Join(out, "\n")
}

func (r *Root) renderPlaying() string {
	c := canvasFor(r.cols, r.rows)
	scene := r.snap.Scene
	if scene == nil {
		scene = render.NewScene("#1e1b2e").Text(render.Point{X: 20, Y: 30}, "Pick a game: 1, 2 or 3", "#f5f3ff")
	}
	canvas := render.Rasterize(scene, c.W, c.H).Render()
	return strings.Join([]string{r.headerText(), canvas, r.tipText(), r.statusText()}, "\n")
}

type tab struct {
	id    string
	label string
}

var headerTabs = []tab{
	{ModeWebBuilder, "1 Web Builder"},
	{ModeBugCatcher, "2 Bug Catcher"},
	{ModeQuiz, "3 Quiz"},
	{"dashboard", "d Dashboard"},
	{"books", "b Books"},
}

const headerPrefix = " Spider Quest | "

type tabSpan struct {
	id         string
	start, end int
}

func tabSpans() []tabSpan {
	spans := make([]tabSpan, 0, len(headerTabs))
	x := len(headerPrefix)
	for _, t := range headerTabs {
		w := len(t.label) + 2
		spans = append(spans, tabSpan{id: t.id, start: x, end: x + w})
		x += w + 1
	}
	return spans
}

func (r *Root) headerText() string {
	bar := r.theme.Header.Padding(0)
	var b strings.Builder
	b.WriteString(bar.Render(headerPrefix))
	used := len(headerPrefix)
	for _, t := range headerTabs {
		style := r.theme.Tab.Inherit(bar)
		if t.id == r.snap.Mode || (t.id == "dashboard" && r.dashboardOpen) || (t.id == "books" && r.booksOpen) {
			style = r.theme.TabActive
		}
		b.WriteString(style.Render(" " + t.label + " "))
		b.WriteString(bar.Render(" "))
		used += len(t.label) + 3
	}
	badges := strings.Join(r.snap.Badges, " • ")
	if r.debug {
		badges = strings.TrimSpace(fmt.Sprintf("%s %dx%d %v", badges, r.cols, r.rows, r.layout))
	}
	room := r.cols - used - 1
	if room > 0 && badges != "" {
		badges = trimForWidth(badges, room)
		gap := room - lipgloss.Width(badges)
		b.WriteString(bar.Render(strings.Repeat(" ", max(0, gap))))
		b.WriteString(r.theme.Badges.Inherit(bar).Render(badges))
		b.WriteString(bar.Render(" "))
	} else if fill := r.cols - used; fill > 0 {
		b.WriteString(bar.Render(strings.Repeat(" ", fill)))
	}
	return b.String()
}

func (r *Root) tipText() string {
	tip := "Ready!"
	if r.snap.Tip != "" {
		tip = "Tip: " + r.snap.Tip
	}
	audio := "Audio: off"
	if r.snap.AudioOn {
		audio = "Audio: on"
	}
	width := max(1, r.cols-2)
	gap := width - lipgloss.Width(audio) - 1
	left := trimForWidth(tip, max(1, gap))
	line := left + strings.Repeat(" ", max(1, width-lipgloss.Width(left)-lipgloss.Width(audio))) + audio
	return r.theme.Tip.Width(max(1, r.cols)).Render(trimForWidth(line, width))
}

func (r *Root) statusText() string {
	keys := r.help.View(r.keymap)
	if keys == "" {
		keys = "1 Web  2 Bugs  3 Quiz  d Dashboard  b Books  m Audio  r Reset  ? About  q Quit"
	}
	if r.statusFlash != "" {
		keys += " | " + r.statusFlash
	}
	keys = trimForWidth(keys, max(1, r.cols-2))
	return r.theme.Status.Width(max(1, r.cols)).Render(keys)
}

type overlaySpec struct {
	title      string
	lines      []string
	width      int
	height     int
	startRow   int
	startCol   int
	itemOffset int
}

func (r *Root) topOverlay() string {
	switch {
	case r.alertText != "":
		return "alert"
	case r.confirmOpen:
		return "confirm"
	case r.aboutOpen:
		return "about"
	case r.booksOpen:
		return "books"
	case r.dashboardOpen:
		return "dashboard"
	}
	return ""
}

func (r *Root) overlayActive() bool {
	return r.topOverlay() != ""
}

func (r *Root) overlaySpec(top string) (overlaySpec, bool) {
	if top == "" {
		return overlaySpec{}, false
	}
	w := min(max(48, r.cols/2), r.cols)
	var title string
	var lines []string
	itemOffset := 0
	switch top {
	case "alert":
		title = firstNonEmptyStr(r.alertTitle, "Notice")
		lines = strings.Split(r.alertText, "\n")
		lines = append(lines, "", "Enter: OK")
	case "confirm":
		title = "Confirm Reset"
		lines = []string{"Reset all progress?", ""}
		for i, label := range []string{"Cancel", "Reset"} {
			prefix := "  "
			if i == r.confirmIndex {
				prefix = "> "
			}
			lines = append(lines, prefix+label)
		}
		lines = append(lines, "", "y: Reset  n/Esc: Cancel")
	case "about":
		title = "About"
		lines = r.aboutLines(w - 4)
		lines = append(lines, "", "Esc: Close")
	case "books":
		title = "Books"
		items := r.bookActions()
		if len(items) == 0 {
			lines = []string{"No book bundle configured.", "Start with --bundle <dir> to read the books."}
		}
		for i, item := range items {
			prefix := "  "
			if i == r.booksIndex {
				prefix = "> "
			}
			lines = append(lines, prefix+item.label)
		}
		lines = append(lines, "", "Enter: Choose  Esc: Close")
	case "dashboard":
		title = "Dashboard"
		lines = r.dashboardLines(w - 4)
	default:
		return overlaySpec{}, false
	}
	for i, line := range lines {
		lines[i] = trimForWidth(line, w-2)
	}
	h := min(len(lines)+2, max(3, r.rows-2))
	startRow := (r.rows - h) / 2
	if top == "dashboard" {
		startRow += int((1 - r.overlayPos) * float64(r.rows-startRow))
	}
	return overlaySpec{
		title:      title,
		lines:      lines,
		width:      w,
		height:     h,
		startRow:   startRow,
		startCol:   (r.cols - w) / 2,
		itemOffset: itemOffset,
	}, true
}

func (r *Root) dashboardLines(width int) []string {
	d := r.snap.Dashboard
	audio := "off"
	if r.snap.AudioOn {
		audio = "on"
	}
	lines := []string{
		fmt.Sprintf("Play time:   %s", d.PlayTime),
		fmt.Sprintf("Quizzes:     %d", d.Quizzes),
		fmt.Sprintf("Correct:     %d", d.Correct),
		fmt.Sprintf("Bug scores:  %s", d.BugScores),
		fmt.Sprintf("Audio:       %s", audio),
		"",
	}
	bar := r.badgeBar
	bar.SetWidth(max(8, min(30, width-10)))
	lines = append(lines, "Badges  "+bar.ViewAs(d.Completion))
	if len(d.Badges) == 0 {
		lines = append(lines, "No badges yet.")
	}
	for _, b := range d.Badges {
		lines = append(lines, "Badge: "+b)
	}
	lines = append(lines, "", "m: Audio  r: Reset  b: Books  Esc: Close")
	return lines
}

func (r *Root) aboutLines(width int) []string {
	text := r.aboutMD
	if strings.TrimSpace(text) == "" {
		text = "Spider Quest"
	}
	if r.markdown != nil {
		if out, err := r.markdown.Render(text); err == nil {
			text = out
		}
	}
	var lines []string
	for _, line := range strings.Split(strings.Trim(text, "\n"), "\n") {
		lines = append(lines, trimForWidth(line, width))
	}
	return lines
}

func (r *Root) drawPanel(title string, lines []string, width, height int) string {
	width = max(4, width)
	height = max(3, height)
	innerW := width - 2
	innerH := height - 2

	h, v, tl, tr, bl, br := "─", "│", "╭", "╮", "╰", "╯"
	if r.ascii {
		h, v = "-", "|"
		tl, tr, bl, br = "+", "+", "+", "+"
	}

	top := r.theme.PanelBorder.Render(tl + strings.Repeat(h, innerW) + tr)
	if label := []rune(" " + title + " "); title != "" && innerW > 2 {
		if len(label) > innerW {
			label = label[:innerW]
		}
		top = r.theme.PanelBorder.Render(tl) +
			r.theme.OverlayTitle.Render(string(label)) +
			r.theme.PanelBorder.Render(strings.Repeat(h, innerW-len(label))+tr)
	}

	out := make([]string, 0, height)
	out = append(out, top)
	for row := 0; row < innerH; row++ {
		line := ""
		if row < len(lines) {
			line = lines[row]
		}
		out = append(out, r.theme.PanelBorder.Render(v)+r.theme.PanelBody.Render(padRune(line, innerW))+r.theme.PanelBorder.Render(v))
	}
	out = append(out, r.theme.PanelBorder.Render(bl+strings.Repeat(h, innerW)+br))
	return strings.Join(out, "\n")
}

func (r *Root) overlayTarget() float64 {
	if r.dashboardOpen {
		return 1
	}
	return 0
}

func (r *Root) animateIfNeeded() tea.Cmd {
	if r.motionLevel == "off" {
		r.overlayPos = r.overlayTarget()
		return nil
	}
	if r.shouldAnimate(r.overlayTarget()) {
		return animateTickCmd()
	}
	return nil
}

func (r *Root) shouldAnimate(target float64) bool {
	if r.motionLevel == "off" {
		return false
	}
	if target > 0 {
		return r.overlayPos < 0.999 || abs(r.overlayVel) > 0.001
	}
	return r.overlayPos > 0.001 || abs(r.overlayVel) > 0.001
}

func (r *Root) currentMouseMode() tea.MouseMode {
	if r.overlayActive() {
		return tea.MouseModeCellMotion
	}
	return tea.MouseModeAllMotion
}

func frameTickCmd() tea.Cmd {
	return tea.Tick(framePeriod, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func animateTickCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return animateMsg(t) })
}

func normalizeStyleVariant(v string) string {
	switch strings.TrimSpace(v) {
	case "silk", "meadow", "retro":
		return strings.TrimSpace(v)
	default:
		return "silk"
	}
}

func normalizeMotionLevel(v string) string {
	switch strings.TrimSpace(v) {
	case "off", "reduced", "full":
		return strings.TrimSpace(v)
	default:
		return "full"
	}
}

func (r *Root) recordInputEvent(event string) {
	r.lastInputEvent = trimForWidth(strings.TrimSpace(event), 160)
}

func (r *Root) onModelPanic(where string, recovered any, msg tea.Msg) {
	if r.statusFlash == "" {
		r.statusFlash = "Recovered UI panic"
	}
	msgType := ""
	if msg != nil {
		msgType = fmt.Sprintf("%T", msg)
	}
	r.logger.Error("ui.panic_recovered",
		"where", where,
		"panic", fmt.Sprintf("%v", recovered),
		"messageType", msgType,
		"mode", r.snap.Mode,
		"cols", r.cols,
		"rows", r.rows,
		"overlay", r.topOverlay(),
		"last_input", r.lastInputEvent,
		"stack", string(debug.Stack()),
	)
}

var _ tea.Model = (*Root)(nil)
var _ View = (*Root)(nil)
