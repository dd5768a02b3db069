package workflows

import (
	"context"

	"github.com/PolarWolf314/theca/internal/audit"
	"github.com/PolarWolf314/theca/internal/notes"
	"github.com/PolarWolf314/theca/internal/utils"
)

// AddOptions configures the add workflow.
type AddOptions struct {
	Profile string
	Title   string
	Body    string
	Status  notes.Status

	// Editor, when set, is started with Body and its result becomes the body.
	Editor utils.Editor
}

// AddResult contains the outcome of an add operation.
type AddResult struct {
	Profile string
	ID      uint64
}

// Add appends a new note to a profile and saves it.
//
// Returns ErrEmptyTitle if the title is blank, ErrProfileNotFound if the
// profile does not exist and ErrEditorFailed if the editor exits badly.
func Add(ctx context.Context, ws *Workspace, opts AddOptions) (*AddResult, error) {
	h, err := Open(ctx, ws, opts.Profile)
	if err != nil {
		return nil, err
	}

	body := opts.Body
	if opts.Editor != nil {
		body, err = opts.Editor(body)
		if err != nil {
			return nil, err
		}
	}

	id, err := h.Profile.Add(opts.Title, body, opts.Status)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ws.Save(h); err != nil {
		return nil, err
	}

	ws.Trail.Log(audit.Entry{
		Operation: "add",
		Profile:   h.Profile.Name,
		IDs:       []uint64{id},
	})

	return &AddResult{Profile: h.Profile.Name, ID: id}, nil
}

// EditOptions configures the edit workflow.
type EditOptions struct {
	Profile string
	ID      uint64
	Fields  notes.EditFields

	// Editor, when set, is started with the current body (or Fields.Body
	// when given) and its result becomes the new body.
	Editor utils.Editor
}

// EditResult contains the outcome of an edit operation.
type EditResult struct {
	Profile string
	Note    notes.Note

	// Changed is false when nothing was asked to change and the profile was
	// left untouched.
	Changed bool
}

// Edit changes the given fields of a note and saves the profile.
//
// Returns ErrNoteNotFound if the id is not in the profile.
func Edit(ctx context.Context, ws *Workspace, opts EditOptions) (*EditResult, error) {
	h, err := Open(ctx, ws, opts.Profile)
	if err != nil {
		return nil, err
	}

	current, err := h.Profile.Get(opts.ID)
	if err != nil {
		return nil, err
	}

	fields := opts.Fields
	if opts.Editor != nil {
		start := current.Body
		if fields.Body != nil {
			start = *fields.Body
		}
		body, err := opts.Editor(start)
		if err != nil {
			return nil, err
		}
		fields.Body = &body
	}

	if fields.IsEmpty() {
		return &EditResult{Profile: h.Profile.Name, Note: current}, nil
	}

	if err := h.Profile.Edit(opts.ID, fields); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ws.Save(h); err != nil {
		return nil, err
	}

	ws.Trail.Log(audit.Entry{
		Operation: "edit",
		Profile:   h.Profile.Name,
		IDs:       []uint64{opts.ID},
	})

	edited, err := h.Profile.Get(opts.ID)
	if err != nil {
		return nil, err
	}
	return &EditResult{Profile: h.Profile.Name, Note: edited, Changed: true}, nil
}

// DeleteOptions configures the delete workflow.
type DeleteOptions struct {
	Profile string
	IDs     []uint64
}

// DeleteResult contains the outcome of a delete operation. Ids that were
// not present are reported, not treated as a failure.
type DeleteResult struct {
	Profile  string
	Deleted  []uint64
	NotFound []uint64
}

// Delete removes notes by id. The profile is only rewritten when at least
// one note was removed.
func Delete(ctx context.Context, ws *Workspace, opts DeleteOptions) (*DeleteResult, error) {
	h, err := Open(ctx, ws, opts.Profile)
	if err != nil {
		return nil, err
	}

	deleted, notFound := h.Profile.Delete(opts.IDs...)
	result := &DeleteResult{Profile: h.Profile.Name, Deleted: deleted, NotFound: notFound}

	if len(deleted) == 0 {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ws.Save(h); err != nil {
		return nil, err
	}

	ws.Trail.Log(audit.Entry{
		Operation: "del",
		Profile:   h.Profile.Name,
		IDs:       deleted,
		NotFound:  notFound,
	})

	return result, nil
}

// ClearResult contains the outcome of a clear operation.
type ClearResult struct {
	Profile string
	Removed int
}

// Clear removes every note from a profile. The id counter is kept so that
// ids are never reused.
func Clear(ctx context.Context, ws *Workspace, profile string) (*ClearResult, error) {
	h, err := Open(ctx, ws, profile)
	if err != nil {
		return nil, err
	}

	removed := h.Profile.Clear()
	result := &ClearResult{Profile: h.Profile.Name, Removed: removed}
	if removed == 0 {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ws.Save(h); err != nil {
		return nil, err
	}

	ws.Trail.Log(audit.Entry{
		Operation: "clear",
		Profile:   h.Profile.Name,
		Count:     removed,
	})

	return result, nil
}
