// Package rename plans and performs the in-place renaming of every regular
// file in a directory.
package rename

import (
	"os"
	"sort"
	"strings"

	"github.com/example/sanename/internal/sanitize"
	"github.com/example/sanename/pkg/utils"
)

// Action is what Apply does with an entry.
type Action int

const (
	ActionRename Action = iota
	ActionUnchanged
	ActionSkip
)

func (a Action) String() string {
	switch a {
	case ActionRename:
		return "rename"
	case ActionUnchanged:
		return "unchanged"
	case ActionSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// Entry is one file of the plan.
type Entry struct {
	From   string
	To     string
	Action Action
	Reason string // set for ActionSkip
}

// Plan is the ordered list of entries for one directory.
type Plan struct {
	Dir       string
	Entries   []Entry
	Overwrite bool
}

// Pending returns the number of entries that will be renamed.
func (p *Plan) Pending() int {
	n := 0
	for _, e := range p.Entries {
		if e.Action == ActionRename {
			n++
		}
	}
	return n
}

// Skipped returns the entries left alone because of a collision or an
// unusable name.
func (p *Plan) Skipped() []Entry {
	var out []Entry
	for _, e := range p.Entries {
		if e.Action == ActionSkip {
			out = append(out, e)
		}
	}
	return out
}

// Options configures NewPlan.
type Options struct {
	Sanitizer  *sanitize.Sanitizer
	Collision  CollisionPolicy
	TrimPrefix string // removed from the start of the sanitized base name
	TrimSuffix string // removed from the end of the sanitized base name
}

// target returns the sanitized base name and extension of name. Trimming is
// skipped when it would leave the base name empty.
func (o Options) target(name string) (base, ext string) {
	base, ext = o.Sanitizer.Parts(name)

	if trimmed := strings.TrimPrefix(base, strings.ToLower(o.TrimPrefix)); trimmed != "" {
		base = trimmed
	}
	if trimmed := strings.TrimSuffix(base, strings.ToLower(o.TrimSuffix)); trimmed != "" {
		base = trimmed
	}
	return base, ext
}

// ListFiles returns the names of the regular files in dir, sorted. Symlinks
// and directories are left out.
func ListFiles(dir string) ([]string, error) {
	files, _, err := scan(dir)
	return files, err
}

func scan(dir string) (files []string, existing map[string]struct{}, err error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, nil, wrapList(dir, err)
	}
	if !info.IsDir() {
		return nil, nil, wrapList(dir, ErrNotDirectory)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, wrapList(dir, err)
	}

	existing = make(map[string]struct{}, len(entries))
	for _, e := range entries {
		existing[e.Name()] = struct{}{}
		if e.Type().IsRegular() {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return nil, nil, wrapList(dir, ErrNoFiles)
	}

	sort.Strings(files)
	return files, existing, nil
}

// NewPlan lists dir and works out the new name of every regular file.
//
// A name counts as taken when any entry of dir already has it or an earlier
// file of the plan was given it. Under CollisionFail every conflict is
// collected and returned as a *CollisionError.
func NewPlan(dir string, opts Options) (*Plan, error) {
	if opts.Sanitizer == nil {
		opts.Sanitizer = sanitize.Default()
	}
	policy, err := ParseCollisionPolicy(string(opts.Collision))
	if err != nil {
		return nil, err
	}
	opts.Collision = policy

	files, existing, err := scan(dir)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Dir:       dir,
		Entries:   make([]Entry, 0, len(files)),
		Overwrite: opts.Collision == CollisionOverwrite,
	}
	claimed := make(map[string]string, len(files))
	taken := func(name string) bool {
		if _, ok := claimed[name]; ok {
			return true
		}
		_, ok := existing[name]
		return ok
	}
	holder := func(name string) string {
		if h, ok := claimed[name]; ok {
			return h
		}
		return name
	}

	var conflicts []Conflict
	for _, from := range files {
		base, ext := opts.target(from)
		to := base + ext

		switch {
		case to == from:
			plan.Entries = append(plan.Entries, Entry{From: from, To: to, Action: ActionUnchanged})
			continue
		case !utils.IsUsableName(to):
			plan.Entries = append(plan.Entries, Entry{From: from, To: to, Action: ActionSkip, Reason: "sanitized name is unusable"})
			continue
		case plan.Overwrite || !taken(to):
			claimed[to] = from
			plan.Entries = append(plan.Entries, Entry{From: from, To: to, Action: ActionRename})
			continue
		}

		switch opts.Collision {
		case CollisionFail:
			conflicts = append(conflicts, Conflict{Source: from, Target: to, Holder: holder(to)})
		case CollisionSkip:
			plan.Entries = append(plan.Entries, Entry{From: from, To: to, Action: ActionSkip, Reason: "name taken by " + holder(to)})
		default:
			free := resolve(opts.Collision, from, base, ext, opts.Sanitizer.Separator(), taken)
			claimed[free] = from
			plan.Entries = append(plan.Entries, Entry{From: from, To: free, Action: ActionRename})
		}
	}

	if len(conflicts) > 0 {
		return nil, &CollisionError{Conflicts: conflicts}
	}
	return plan, nil
}
