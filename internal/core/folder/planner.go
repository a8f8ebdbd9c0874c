package folder

// RollbackPlan lists the records to retract when a folder is abandoned, in
// retraction order.
type RollbackPlan struct {
	FolderID int64
	Retract  []int64
}

// GenerateRollbackPlan plans the retraction of a folder and every child it
// accumulated. The folder goes first, then children in document order.
// This is a pure function.
func GenerateRollbackPlan(folderID int64, childIDs []int64) RollbackPlan {
	ids := make([]int64, 0, len(childIDs)+1)
	ids = append(ids, folderID)
	ids = append(ids, childIDs...)
	return RollbackPlan{FolderID: folderID, Retract: ids}
}

// TitleCandidates holds the title sources available for a folder.
type TitleCandidates struct {
	Localized    string
	HasLocalized bool
	Default      string
	HasDefault   bool
	Fallback     string
}

// ChooseTitle picks exactly one title: the title qualified with the current
// language, then the unqualified title, then the fallback.
func ChooseTitle(c TitleCandidates) string {
	switch {
	case c.HasLocalized:
		return c.Localized
	case c.HasDefault:
		return c.Default
	default:
		return c.Fallback
	}
}
