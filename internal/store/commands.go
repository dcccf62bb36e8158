package store

import (
	"fmt"
	"strings"
)

// Command is one document mutation. The set is closed: every way to change a
// document goes through Apply with one of the types below, which is what
// keeps reconciliation and persistence in one place.
type Command interface {
	isCommand()
}

// InsertText splices Text into the buffer at At. SelectionLen > 0 means the
// text replaces the selection [At, At+SelectionLen).
type InsertText struct {
	At           int
	Text         string
	SelectionLen int
}

// DeleteText removes Count bytes starting at At. FromSelection marks the
// bytes as a selection the user had highlighted.
type DeleteText struct {
	At            int
	Count         int
	FromSelection bool
}

// ApplyTag tags the selection with an existing tag.
type ApplyTag struct {
	Name      string
	Selection Span
}

// DeleteRange removes the first stored range equal to Range.
type DeleteRange struct {
	Range TaggedRange
}

type CreateTag struct {
	Name string
}

// DeleteTag removes the tag and all of its ranges.
type DeleteTag struct {
	Name string
}

type SetColor struct {
	Name  string
	Color RGB
}

// MoveRange changes the stored order of the ranges.
type MoveRange struct {
	From int
	To   int
}

type UpdateSettings struct {
	Settings Settings
}

func (InsertText) isCommand()     {}
func (DeleteText) isCommand()     {}
func (ApplyTag) isCommand()       {}
func (DeleteRange) isCommand()    {}
func (CreateTag) isCommand()      {}
func (DeleteTag) isCommand()      {}
func (SetColor) isCommand()       {}
func (MoveRange) isCommand()      {}
func (UpdateSettings) isCommand() {}

// Apply runs one command against the document and saves it when anything
// changed. The bool reports whether the document was modified; saving is
// best effort and never fails the command.
func (w *Workspace) Apply(doc *Document, cmd Command) (bool, error) {
	changed, err := applyCommand(doc, cmd)
	if err != nil {
		return false, err
	}
	if changed {
		w.Save(doc)
	}
	return changed, nil
}

func applyCommand(doc *Document, cmd Command) (bool, error) {
	switch c := cmd.(type) {
	case InsertText:
		if c.SelectionLen < 0 {
			return false, fmt.Errorf("%w: negative selection length", ErrInvalid)
		}
		if c.At < 0 || c.At+c.SelectionLen > len(doc.Buffer) {
			return false, fmt.Errorf("%w: edit at %d..%d outside buffer of %d bytes", ErrInvalid, c.At, c.At+c.SelectionLen, len(doc.Buffer))
		}
		if c.Text == "" && c.SelectionLen == 0 {
			return false, nil
		}
		doc.editInsert(c.At, c.Text, c.SelectionLen)
		doc.CleanInvalidRanges()
		return true, nil

	case DeleteText:
		if c.Count < 0 {
			return false, fmt.Errorf("%w: negative delete count", ErrInvalid)
		}
		if c.At < 0 || c.At+c.Count > len(doc.Buffer) {
			return false, fmt.Errorf("%w: delete at %d..%d outside buffer of %d bytes", ErrInvalid, c.At, c.At+c.Count, len(doc.Buffer))
		}
		if c.Count == 0 {
			return false, nil
		}
		doc.editDelete(c.At, c.Count, c.FromSelection)
		doc.CleanInvalidRanges()
		return true, nil

	case ApplyTag:
		name := strings.TrimSpace(c.Name)
		if _, ok := doc.FindTag(name); !ok {
			return false, fmt.Errorf("%w: tag %q", ErrNotFound, name)
		}
		if c.Selection.Start < 0 || c.Selection.End > len(doc.Buffer) {
			return false, fmt.Errorf("%w: selection %d..%d outside buffer of %d bytes", ErrInvalid, c.Selection.Start, c.Selection.End, len(doc.Buffer))
		}
		return doc.ApplyTagToSelection(name, c.Selection), nil

	case DeleteRange:
		if !doc.RemoveRange(c.Range) {
			return false, fmt.Errorf("%w: range %s %d..%d", ErrNotFound, c.Range.TagName, c.Range.Span.Start, c.Range.Span.End)
		}
		return true, nil

	case CreateTag:
		return doc.AddTag(c.Name), nil

	case DeleteTag:
		if !doc.RemoveTag(c.Name) {
			return false, fmt.Errorf("%w: tag %q", ErrNotFound, c.Name)
		}
		return true, nil

	case SetColor:
		return doc.RecolorTag(c.Name, c.Color), nil

	case MoveRange:
		n := len(doc.TaggedRanges)
		if c.From < 0 || c.From >= n || c.To < 0 || c.To >= n {
			return false, fmt.Errorf("%w: move %d to %d with %d ranges", ErrInvalid, c.From, c.To, n)
		}
		return doc.ReorderRange(c.From, c.To), nil

	case UpdateSettings:
		if doc.Settings == c.Settings {
			return false, nil
		}
		doc.Settings = c.Settings
		return true, nil
	}
	return false, fmt.Errorf("%w: unknown command %T", ErrInvalid, cmd)
}
