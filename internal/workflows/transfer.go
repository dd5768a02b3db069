package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/theca/internal/audit"
	kerrors "github.com/PolarWolf314/theca/internal/errors"
)

// TransferOptions configures the transfer workflow.
type TransferOptions struct {
	Source string
	Target string
	ID     uint64
}

// TransferResult contains the outcome of a transfer operation.
type TransferResult struct {
	Source   string
	Target   string
	SourceID uint64

	// TargetID is the id the note received in the target profile.
	TargetID uint64
}

// DuplicatedError reports a transfer whose target was written but whose
// source could not be updated. The note then exists in both profiles.
type DuplicatedError struct {
	Result *TransferResult
	Err    error
}

func (e *DuplicatedError) Error() string {
	return fmt.Sprintf("note %d was copied to %s as %d but could not be removed from %s: %v",
		e.Result.SourceID, e.Result.Target, e.Result.TargetID, e.Result.Source, e.Err)
}

func (e *DuplicatedError) Unwrap() error {
	return e.Err
}

// Transfer moves a note to another profile. The target is saved before the
// source, so a failure in between leaves a duplicate rather than losing the
// note; that case is reported as a *DuplicatedError alongside the result.
//
// Returns ErrSelfTransfer if source and target are the same profile and
// ErrNoteNotFound if the id is not in the source.
func Transfer(ctx context.Context, ws *Workspace, opts TransferOptions) (*TransferResult, error) {
	if opts.Source == opts.Target {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrSelfTransfer, opts.Source)
	}

	src, err := Open(ctx, ws, opts.Source)
	if err != nil {
		return nil, err
	}
	note, err := src.Profile.Get(opts.ID)
	if err != nil {
		return nil, err
	}

	dst, err := Open(ctx, ws, opts.Target)
	if err != nil {
		return nil, fmt.Errorf("opening target profile: %w", err)
	}

	newID, err := dst.Profile.Insert(note)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ws.Save(dst); err != nil {
		return nil, fmt.Errorf("saving target profile: %w", err)
	}

	result := &TransferResult{
		Source:   src.Profile.Name,
		Target:   dst.Profile.Name,
		SourceID: opts.ID,
		TargetID: newID,
	}

	ws.Trail.Log(audit.Entry{
		Operation:     "transfer",
		Profile:       src.Profile.Name,
		IDs:           []uint64{opts.ID},
		TargetProfile: dst.Profile.Name,
		TargetID:      newID,
	})

	src.Profile.Delete(opts.ID)
	if err := ws.Save(src); err != nil {
		return result, &DuplicatedError{Result: result, Err: err}
	}

	return result, nil
}
