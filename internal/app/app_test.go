package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/ates/study/internal/content"
	"github.com/ates/study/internal/progress"
	"github.com/ates/study/internal/router"
	"github.com/ates/study/internal/screen"
	"github.com/ates/study/internal/store"
)

type plainScreen struct{}

func (s *plainScreen) Init() tea.Cmd                           { return nil }
func (s *plainScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *plainScreen) View(int, int) string                    { return "" }
func (s *plainScreen) Title() string                           { return "plain" }

// escScreen opts into esc handling with a switchable answer.
type escScreen struct {
	plainScreen
	owns bool
}

func (s *escScreen) OwnsEsc() bool { return s.owns }

func newTestModel() AppModel {
	catalog := content.Default()
	svc := progress.NewService(catalog, store.NewMemory())
	return newAppModel(Options{Catalog: catalog, Progress: svc})
}

func isPop(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(router.PopScreenMsg)
	return ok
}

func TestEscPopsPassiveScreen(t *testing.T) {
	m := newTestModel()
	m.router.Push(&plainScreen{})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !isPop(cmd) {
		t.Error("esc on a passive screen should pop")
	}
}

func TestEscForwardedWhenScreenOwnsIt(t *testing.T) {
	m := newTestModel()
	m.router.Push(&escScreen{owns: true})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if isPop(cmd) {
		t.Error("esc must reach a screen that claims it, not pop")
	}
}

func TestEscPopsWhenOwnershipDeclined(t *testing.T) {
	m := newTestModel()
	m.router.Push(&escScreen{owns: false})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !isPop(cmd) {
		t.Error("a screen answering OwnsEsc false should still be popped")
	}
}

func TestEscIgnoredAtRoot(t *testing.T) {
	m := newTestModel()

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if isPop(cmd) {
		t.Error("esc at the stack bottom must not pop")
	}
}
