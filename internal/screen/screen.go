package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codegenome/internal/appstate"
	"github.com/abhisek/codegenome/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens that consume printable keys,
// such as forms, so global shortcuts do not fire while typing.
type InputCapturer interface {
	CapturesInput() bool
}

// StateChangedMsg is delivered to the active screen after the state store
// persists a change.
type StateChangedMsg struct {
	Change appstate.Change
}
