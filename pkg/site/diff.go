package site

import "fmt"

// ChangeKind classifies a difference between two records.
type ChangeKind string

const (
	Modified ChangeKind = "modified"
	Added    ChangeKind = "added"
	Removed  ChangeKind = "removed"
)

// Change is one field-level difference. Old and New are empty for added and
// removed nav entries respectively.
type Change struct {
	Kind  ChangeKind
	Field string
	Old   string
	New   string
}

func (c Change) String() string {
	switch c.Kind {
	case Added:
		return fmt.Sprintf("+ %s: %s", c.Field, c.New)
	case Removed:
		return fmt.Sprintf("- %s: %s", c.Field, c.Old)
	default:
		return fmt.Sprintf("~ %s: %q -> %q", c.Field, c.Old, c.New)
	}
}

// Diff compares two records field by field. Nav entries are compared by
// position, so a reorder shows up as modifications.
func Diff(old, next *Config) []Change {
	if old == nil {
		old = &Config{}
	}
	if next == nil {
		next = &Config{}
	}

	var changes []Change
	if old.Title != next.Title {
		changes = append(changes, Change{Kind: Modified, Field: "title", Old: old.Title, New: next.Title})
	}
	if old.Description != next.Description {
		changes = append(changes, Change{Kind: Modified, Field: "description", Old: old.Description, New: next.Description})
	}

	on, nn := old.ThemeConfig.Nav, next.ThemeConfig.Nav
	for i := 0; i < len(on) || i < len(nn); i++ {
		field := fmt.Sprintf("themeConfig.nav[%d]", i)
		switch {
		case i >= len(on):
			changes = append(changes, Change{Kind: Added, Field: field, New: describe(nn[i])})
		case i >= len(nn):
			changes = append(changes, Change{Kind: Removed, Field: field, Old: describe(on[i])})
		default:
			if on[i].Text != nn[i].Text {
				changes = append(changes, Change{Kind: Modified, Field: field + ".text", Old: on[i].Text, New: nn[i].Text})
			}
			if on[i].Link != nn[i].Link {
				changes = append(changes, Change{Kind: Modified, Field: field + ".link", Old: on[i].Link, New: nn[i].Link})
			}
		}
	}
	return changes
}

func describe(e NavEntry) string {
	return fmt.Sprintf("%s (%s)", e.Text, e.Link)
}
