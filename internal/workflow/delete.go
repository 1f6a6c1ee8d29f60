// Package workflow holds the confirmation state machines that sit in front of
// destructive or irreversible writes. Each machine is a value; transitions
// return the next value and never mutate the receiver.
package workflow

import (
	"errors"
	"fmt"

	"github.com/nimasrn/outlet-ledger/internal/model"
)

var ErrInvalidTransition = errors.New("invalid workflow transition")

type DeleteStage string

const (
	DeleteIdle     DeleteStage = "idle"
	DeleteConfirm1 DeleteStage = "confirm1"
	DeleteConfirm2 DeleteStage = "confirm2"
)

type DeleteTarget struct {
	Kind  model.EntityKind `json:"kind"`
	ID    int64            `json:"id"`
	Label string           `json:"label"`
}

// DeleteFlow walks idle -> confirm1 -> confirm2 -> idle. Only ConfirmStep2
// hands out a target, and only the holder of that target deletes anything.
type DeleteFlow struct {
	Stage  DeleteStage   `json:"stage"`
	Target *DeleteTarget `json:"target,omitempty"`
}

func NewDeleteFlow() DeleteFlow {
	return DeleteFlow{Stage: DeleteIdle}
}

func (f DeleteFlow) stage() DeleteStage {
	if f.Stage == "" {
		return DeleteIdle
	}
	return f.Stage
}

func (f DeleteFlow) Initiate(target DeleteTarget) (DeleteFlow, error) {
	if f.stage() != DeleteIdle {
		return f, fmt.Errorf("%w: initiate from %s", ErrInvalidTransition, f.stage())
	}
	if !target.Kind.Valid() || target.ID == 0 {
		return f, fmt.Errorf("%w: bad delete target", model.ErrInvalidInput)
	}
	return DeleteFlow{Stage: DeleteConfirm1, Target: &target}, nil
}

func (f DeleteFlow) ConfirmStep1() (DeleteFlow, error) {
	if f.stage() != DeleteConfirm1 {
		return f, fmt.Errorf("%w: confirm step 1 from %s", ErrInvalidTransition, f.stage())
	}
	return DeleteFlow{Stage: DeleteConfirm2, Target: f.Target}, nil
}

// ConfirmStep2 returns the flow to idle and releases the target to delete.
func (f DeleteFlow) ConfirmStep2() (DeleteFlow, DeleteTarget, error) {
	if f.stage() != DeleteConfirm2 || f.Target == nil {
		return f, DeleteTarget{}, fmt.Errorf("%w: confirm step 2 from %s", ErrInvalidTransition, f.stage())
	}
	return NewDeleteFlow(), *f.Target, nil
}

func (f DeleteFlow) Cancel() (DeleteFlow, error) {
	if f.stage() == DeleteIdle {
		return f, fmt.Errorf("%w: nothing to cancel", ErrInvalidTransition)
	}
	return NewDeleteFlow(), nil
}
