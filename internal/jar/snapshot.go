package jar

import "github.com/existflow/notejar/internal/model"

// Snapshot is a read-only view of the jar for rendering and the HTTP API
type Snapshot struct {
	State        string            `json:"state"`
	Clicks       int               `json:"clicks"`
	Shaking      bool              `json:"shaking"`
	CanActivate  bool              `json:"canActivate"`
	Remaining    int               `json:"remaining"`
	Opened       int               `json:"opened"`
	LastRevealed *model.OpenedNote `json:"lastRevealed,omitempty"`
	Selected     *model.OpenedNote `json:"selected,omitempty"`
	ModalOpen    bool              `json:"modalOpen"`
}

// Snapshot captures the current jar state
func (c *Controller) Snapshot() Snapshot {
	s := c.session
	return Snapshot{
		State:        c.State().String(),
		Clicks:       s.Clicks,
		Shaking:      s.Shaking,
		CanActivate:  c.CanActivate(),
		Remaining:    c.Remaining(),
		Opened:       len(c.history),
		LastRevealed: cloneNote(s.LastRevealed),
		Selected:     cloneNote(s.Selected),
		ModalOpen:    s.ModalOpen,
	}
}

func cloneNote(n *model.OpenedNote) *model.OpenedNote {
	if n == nil {
		return nil
	}
	cp := *n
	return &cp
}
