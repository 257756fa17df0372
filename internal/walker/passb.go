package walker

import (
	"github.com/dl/gitnuke/internal/fsdir"
	"github.com/dl/gitnuke/internal/job"
)

// sizeTask is one unit of Pass B: a path belonging to group (the index
// of the ignored root it's being aggregated under) whose size needs
// accounting for. A task may name either a file or a directory; which
// one it is gets discovered by statting it, not carried on the task.
type sizeTask struct {
	group int
	path  string
}

// sizeOutput is one task's contribution to its group's total. Multiple
// outputs can share a group (a directory's children fan out into their
// own tasks, each reporting back under the same group); the caller sums
// them after job.Run returns.
type sizeOutput struct {
	group int
	bytes int64
}

// sizer holds Pass B's shared, read-only configuration.
type sizer struct {
	followLinks bool
	onError     func(error)
}

func (s *sizer) run(task sizeTask, local job.LocalQueue[sizeTask]) (sizeOutput, bool) {
	info, err := fsdir.Stat(task.path)
	if err != nil {
		s.reportError(task.path, err)
		return sizeOutput{}, false
	}

	if !info.IsDir {
		return sizeOutput{group: task.group, bytes: info.Size}, true
	}

	entries, err := fsdir.ReadDir(task.path)
	if err != nil {
		s.reportError(task.path, err)
		return sizeOutput{}, false
	}

	var total int64
	for _, e := range entries {
		switch e.Type {
		case fsdir.Dir:
			local.Push(sizeTask{group: task.group, path: e.Path})
		case fsdir.File:
			if childInfo, err := fsdir.Stat(e.Path); err == nil {
				total += childInfo.Size
			} else {
				s.reportError(e.Path, err)
			}
		case fsdir.Symlink:
			if s.followLinks {
				if childInfo, err := fsdir.Stat(e.Path); err == nil {
					if childInfo.IsDir {
						local.Push(sizeTask{group: task.group, path: e.Path})
					} else {
						total += childInfo.Size
					}
				}
			}
		}
	}

	return sizeOutput{group: task.group, bytes: total}, true
}

func (s *sizer) reportError(path string, err error) {
	if s.onError != nil {
		s.onError(&EntryError{Path: path, Err: err})
	}
}
