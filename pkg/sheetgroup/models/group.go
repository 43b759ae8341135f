package models

// Group is a set of sheets sharing one signature.
type Group struct {
	// Index is the 1-based creation order of the group.
	Index int `json:"index"`
	// Label is the display label, unique within a classification.
	Label string `json:"label"`
	// Columns is the column count of the first member sheet (0 for the
	// empty-signature group).
	Columns int `json:"columns"`
	// Empty marks the group of sheets whose signature is empty.
	Empty bool `json:"empty,omitempty"`
	// Signature is the shared normalized row strings.
	Signature []string `json:"signature"`
	// Sheets lists member sheet names in input order.
	Sheets []string `json:"sheets"`
}

// Classification is the result of one classification run.
type Classification struct {
	// Window is the window the signatures were computed from.
	Window Window `json:"window"`
	// Groups lists groups in creation order.
	Groups []Group `json:"groups"`
	// Clamped lists non-empty sheets whose extent lies entirely outside the
	// window, so their signature holds no cell.
	Clamped []string `json:"clamped,omitempty"`
}

// Group looks a group up by label.
func (c *Classification) Group(label string) (*Group, bool) {
	for i := range c.Groups {
		if c.Groups[i].Label == label {
			return &c.Groups[i], true
		}
	}
	return nil, false
}

// GroupOf returns the group holding the named sheet.
func (c *Classification) GroupOf(sheet string) (*Group, bool) {
	for i := range c.Groups {
		for _, name := range c.Groups[i].Sheets {
			if name == sheet {
				return &c.Groups[i], true
			}
		}
	}
	return nil, false
}

// Labels returns group labels in creation order.
func (c *Classification) Labels() []string {
	labels := make([]string, len(c.Groups))
	for i, g := range c.Groups {
		labels[i] = g.Label
	}
	return labels
}
