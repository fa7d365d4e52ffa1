// Package screen defines the contract between the router and the views it
// stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/smartest/internal/ui/layout"
)

// Screen is one view on the router stack. Update returns the screen that
// should stay active, which is usually the receiver.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider screens replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer screens take esc for themselves while CapturingInput
// reports true, e.g. to cancel a filter instead of leaving the screen.
type InputCapturer interface {
	CapturingInput() bool
}

// Capturing reports whether s currently claims esc.
func Capturing(s Screen) bool {
	c, ok := s.(InputCapturer)
	return ok && c.CapturingInput()
}
