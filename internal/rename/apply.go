package rename

import (
	"context"
	"os"
	"path/filepath"
)

// ApplyOptions configures Apply.
type ApplyOptions struct {
	// KeepGoing continues with the next file after a failed rename.
	KeepGoing bool

	OnProgress func(Entry)
	OnError    func(Entry, error)
}

// Failure pairs an entry with the error that stopped its rename.
type Failure struct {
	Entry Entry
	Err   error
}

// Result summarizes an Apply run.
type Result struct {
	Renamed  int
	Failures []Failure
}

// Apply renames every ActionRename entry of plan in order, one os.Rename per
// file. Unless the plan overwrites, a target that appeared since planning is
// reported as ErrTargetExists and left untouched.
func Apply(ctx context.Context, plan *Plan, opts ApplyOptions) (Result, error) {
	var res Result

	for _, e := range plan.Entries {
		if e.Action != ActionRename {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}

		err := renameOne(plan.Dir, e, plan.Overwrite)
		if err != nil {
			res.Failures = append(res.Failures, Failure{Entry: e, Err: err})
			if opts.OnError != nil {
				opts.OnError(e, err)
			}
			if !opts.KeepGoing {
				return res, err
			}
			continue
		}

		res.Renamed++
		if opts.OnProgress != nil {
			opts.OnProgress(e)
		}
	}

	return res, nil
}

func renameOne(dir string, e Entry, overwrite bool) error {
	from := filepath.Join(dir, e.From)
	to := filepath.Join(dir, e.To)

	if !overwrite {
		if err := checkFree(from, to); err != nil {
			return wrapRename(e.From, err)
		}
	}

	if err := os.Rename(from, to); err != nil {
		return wrapRename(e.From, err)
	}
	return nil
}

// checkFree fails when to exists and is not from itself. A case-insensitive
// filesystem resolves "A.txt" and "a.txt" to the same file.
func checkFree(from, to string) error {
	toInfo, err := os.Lstat(to)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	fromInfo, err := os.Lstat(from)
	if err == nil && os.SameFile(fromInfo, toInfo) {
		return nil
	}
	return &PathError{Path: filepath.Base(to), Op: "check", Err: ErrTargetExists}
}
