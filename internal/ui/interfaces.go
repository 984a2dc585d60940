package ui

import (
	"time"

	"spiderquest/internal/render"
)

// Controller is driven synchronously from the update loop. Implementations
// must not call back into the running program.
type Controller interface {
	OnFrame(now time.Time)
	OnSelectMode(mode string)
	OnPointerDown(p render.Point)
	OnPointerMove(p render.Point)
	OnPointerUp(p render.Point)
	OnClick(p render.Point)
	OnToggleAudio()
	OnResetProgress()
	OnOpenBook(id string) error
	OnDownloadBook(id string) (string, error)
	OnQuit()
	Snapshot() Snapshot
}

type View interface {
	Run() error
	Stop()
	SetController(Controller)
	SetDashboardOpen(open bool)
	SetBooksOpen(open bool)
	SetAbout(markdown string)
}

// Mode keys used by the header tabs.
const (
	ModeWebBuilder = "web_builder"
	ModeBugCatcher = "bug_catcher"
	ModeQuiz       = "quiz"
)

type LayoutMode int

const (
	LayoutWide LayoutMode = iota
	LayoutMedium
	LayoutTooSmall
)

// Snapshot is everything the view draws for one frame.
type Snapshot struct {
	Mode      string
	Scene     *render.Scene
	Tip       string
	Badges    []string
	AudioOn   bool
	Books     []BookRow
	Dashboard DashboardState
}

type DashboardState struct {
	PlayTime  string
	Quizzes   int
	Correct   int
	BugScores string
	Badges    []string
	// Earned over available badges, 0..1.
	Completion float64
}

type BookRow struct {
	ID    string
	Title string
}
