package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"spiderquest/internal/games/quiz"
	"spiderquest/internal/games/webbuilder"
)

func (a *App) setDevState(state, demo string) {
	a.devMu.Lock()
	defer a.devMu.Unlock()
	a.devState.State = state
	a.devState.Demo = demo
	a.devState.Rendered = true
	a.devState.Pending = false
	a.devState.Error = ""
	a.devState.RenderSeq++
}

func (a *App) setDevPending(state, demo string) {
	a.devMu.Lock()
	defer a.devMu.Unlock()
	a.devState.State = state
	a.devState.Demo = demo
	a.devState.Rendered = false
	a.devState.Pending = true
	a.devState.Error = ""
	a.devState.RenderSeq++
}

func (a *App) setDevError(state, demo, errText string) {
	a.devMu.Lock()
	defer a.devMu.Unlock()
	a.devState.State = state
	a.devState.Demo = demo
	a.devState.Rendered = false
	a.devState.Pending = false
	a.devState.Error = errText
	a.devState.RenderSeq++
}

func (a *App) getDevState() map[string]any {
	a.devMu.Lock()
	defer a.devMu.Unlock()
	return map[string]any{
		"ok":         true,
		"session":    a.session.ID,
		"state":      a.devState.State,
		"demo":       a.devState.Demo,
		"render_seq": a.devState.RenderSeq,
		"rendered":   a.devState.Rendered,
		"pending":    a.devState.Pending,
		"error":      a.devState.Error,
	}
}

// drainDemoQueue applies scenarios requested over HTTP. It runs on the
// update loop so scenarios never race the game.
func (a *App) drainDemoQueue() {
	for {
		select {
		case name := <-a.demoQueue:
			if _, err := a.applyDemoScenario(context.Background(), name); err != nil {
				a.logger.Error("dev.demo.apply_failed", "demo", name, "error", err.Error())
			}
		default:
			return
		}
	}
}

func (a *App) applyDemoScenario(ctx context.Context, requested string) (string, error) {
	sc := a.demo.Resolve(requested)
	a.logger.Info("dev.demo.dispatch.apply", "requested", requested, "resolved", sc.Name)

	if sc.Mode != "" {
		mode, _ := parseMode(sc.Mode)
		a.SwitchTo(mode)
	}
	if sc.Connections > 0 {
		wb, ok := a.active.(*webbuilder.Game)
		if !ok {
			err := fmt.Errorf("scenario %s needs the web builder", sc.Name)
			a.setDevError(sc.Name, requested, err.Error())
			return sc.Name, err
		}
		anchors := wb.Anchors()
		for k := 0; k < sc.Connections && k+1 < len(anchors); k++ {
			wb.PointerDown(anchors[k].Pos)
			wb.PointerUp(anchors[k+1].Pos)
		}
	}
	if sc.FastForward > 0 {
		a.sched.Advance(a.clock.Now().Add(sc.FastForward))
	}
	if sc.AnswerCorrect {
		q, ok := a.active.(*quiz.Game)
		if !ok {
			err := fmt.Errorf("scenario %s needs the quiz", sc.Name)
			a.setDevError(sc.Name, requested, err.Error())
			return sc.Name, err
		}
		for !q.Done() {
			q.Answer(a.pack.Questions[q.Index()].Correct)
		}
	}
	a.view.SetDashboardOpen(sc.DashboardOpen)
	a.view.SetBooksOpen(sc.BooksOpen)

	a.setDevState(sc.Name, requested)
	if err := a.demo.SetState(ctx, a.cfg.DevStateDir, sc.Name, true); err != nil {
		a.logger.Error("dev_state.write_failed", "state", sc.Name, "error", err.Error())
	}
	return sc.Name, nil
}

func (a *App) devHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/__dev/ready", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(a.getDevState())
	})
	mux.HandleFunc("/__dev/demo", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		var req struct {
			Demo string `json:"demo"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "invalid json"})
			return
		}
		req.Demo = strings.TrimSpace(req.Demo)
		if req.Demo == "" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "demo is required"})
			return
		}
		resolved := a.demo.Resolve(req.Demo).Name
		a.setDevPending(resolved, req.Demo)
		select {
		case a.demoQueue <- req.Demo:
		default:
			a.setDevError(resolved, req.Demo, "demo queue full")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "demo queue full", "state": resolved})
			return
		}
		a.logger.Info("dev.demo.request", "demo", req.Demo, "resolved", resolved)
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "state": resolved, "requested": req.Demo, "pending": true})
	})
	return mux
}

func (a *App) startDevHTTP() error {
	a.devServer = &http.Server{Addr: a.cfg.DevHTTP, Handler: a.devHandler()}
	a.setDevState(string(a.session.ActiveMode), a.cfg.DemoScenario)
	go func() {
		if err := a.devServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("dev_http.listen_failed", "error", err.Error(), "addr", a.cfg.DevHTTP)
		}
	}()
	return nil
}
