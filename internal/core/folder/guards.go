// Package folder contains the pure business logic for folder placements.
// Guards are pure functions that evaluate preconditions without side effects.
package folder

import "fmt"

// MinChildren is the smallest number of children a folder may keep.
const MinChildren = 2

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CommitFolderContext provides context for the folder validity guard.
type CommitFolderContext struct {
	FolderID int64
	ChildIDs []int64 // children whose shortcut build succeeded
}

// CanCommitFolder evaluates whether a folder may stay in the store once its
// nested region has been consumed.
// Rules:
// - At least MinChildren children must have been built
func CanCommitFolder(ctx CommitFolderContext) GuardResult {
	if len(ctx.ChildIDs) < MinChildren {
		return GuardResult{
			Allowed: false,
			Reason: fmt.Sprintf("folder %d has %d valid item(s), needs at least %d",
				ctx.FolderID, len(ctx.ChildIDs), MinChildren),
		}
	}

	return GuardResult{Allowed: true}
}
