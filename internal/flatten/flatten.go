package flatten

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/jsonpane/internal/collapse"
	"github.com/oakwood-commons/jsonpane/internal/value"
)

// DefaultParallelThreshold is the sibling count below which parallel
// dispatch overhead outweighs the win and flattening stays inline.
const DefaultParallelThreshold = 64

// Options tunes the flattening engine.
type Options struct {
	// Workers bounds the parallel fan-out; 0 means GOMAXPROCS, 1 disables
	// parallelism entirely.
	Workers int

	// ParallelThreshold is the minimum number of direct siblings a group
	// needs before it is fanned out to workers; 0 means the default.
	ParallelThreshold int

	// Log receives degrade notices; zero value discards.
	Log logr.Logger
}

func (o Options) normalized() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.ParallelThreshold <= 0 {
		o.ParallelThreshold = DefaultParallelThreshold
	}
	if o.Log.GetSink() == nil {
		o.Log = logr.Discard()
	}
	return o
}

// Flatten converts the ordered top-level values into display rows,
// consulting the collapse store for folded subtrees. firstIndex is the
// stream index of values[0], so paths stay stable after eviction.
//
// The returned degraded flag reports that at least one parallel worker
// failed and its subtree was recomputed sequentially; the rows themselves
// are always complete and correct. Identical inputs yield byte-identical
// rows regardless of worker count.
func Flatten(values []value.Value, firstIndex int, store *collapse.Store, opts Options) ([]Row, bool) {
	f := &flattener{store: store, opts: opts.normalized()}
	f.sem = make(chan struct{}, f.opts.Workers)

	children := make([]child, len(values))
	for i, v := range values {
		children[i] = child{
			v: v,
			// Top-level values never carry a trailing comma: the stream
			// may still grow, so no value is "not last".
			last: true,
			path: value.Path{value.Index(firstIndex + i)},
		}
	}

	var rows []Row
	f.siblings(children, 0, &rows)
	return rows, f.degraded.Load()
}

// child is one pending sibling to flatten.
type child struct {
	v      value.Value
	path   value.Path
	key    string
	hasKey bool
	last   bool
}

type flattener struct {
	store    *collapse.Store
	opts     Options
	sem      chan struct{}
	degraded atomic.Bool
}

// siblings flattens an ordered sibling group at the given depth, fanning
// out to workers when the group is large enough. Worker outputs are
// concatenated in original sibling order, never completion order.
func (f *flattener) siblings(children []child, depth int, out *[]Row) {
	if len(children) < f.opts.ParallelThreshold || f.opts.Workers <= 1 {
		for _, c := range children {
			f.one(c, depth, out)
		}
		return
	}

	results := make([][]Row, len(children))
	failed := make([]bool, len(children))
	var wg sync.WaitGroup

	for i, c := range children {
		select {
		case f.sem <- struct{}{}:
			wg.Add(1)
			go func(i int, c child) {
				defer wg.Done()
				defer func() { <-f.sem }()
				defer func() {
					if r := recover(); r != nil {
						// Best-effort fallback: the subtree is redone
						// sequentially after the group completes.
						failed[i] = true
						f.degraded.Store(true)
						f.opts.Log.Info("flatten worker failed, degrading to sequential",
							"sibling", i, "panic", r)
					}
				}()
				var rows []Row
				f.one(c, depth, &rows)
				results[i] = rows
			}(i, c)
		default:
			// No worker slot free; flatten inline. This also prevents
			// nested sibling groups from deadlocking on the pool.
			var rows []Row
			f.one(c, depth, &rows)
			results[i] = rows
		}
	}
	wg.Wait()

	for i, c := range children {
		if failed[i] {
			results[i] = nil
			var rows []Row
			f.one(c, depth, &rows)
			results[i] = rows
		}
		*out = append(*out, results[i]...)
	}
}

// one flattens a single node depth-first in pre-order: open row, children
// (unless collapsed, which emits one summary row instead), close row.
func (f *flattener) one(c child, depth int, out *[]Row) {
	switch c.v.Kind {
	case value.KindObject:
		if f.store.IsCollapsed(c.path) {
			*out = append(*out, buildRow(RowCollapsed, c.path, depth, c.key, c.hasKey, summaryText(c.v), c.last, len(c.v.Members)))
			return
		}
		*out = append(*out, buildRow(RowObjectOpen, c.path, depth, c.key, c.hasKey, "{", c.last, len(c.v.Members)))
		grandchildren := make([]child, len(c.v.Members))
		for i, m := range c.v.Members {
			grandchildren[i] = child{
				v:      m.Value,
				path:   c.path.Child(value.Key(m.Key)),
				key:    m.Key,
				hasKey: true,
				last:   i == len(c.v.Members)-1,
			}
		}
		f.siblings(grandchildren, depth+1, out)
		*out = append(*out, closeRow(RowObjectClose, c.path, depth, c.last))

	case value.KindArray:
		if f.store.IsCollapsed(c.path) {
			*out = append(*out, buildRow(RowCollapsed, c.path, depth, c.key, c.hasKey, summaryText(c.v), c.last, len(c.v.Items)))
			return
		}
		*out = append(*out, buildRow(RowArrayOpen, c.path, depth, c.key, c.hasKey, "[", c.last, len(c.v.Items)))
		grandchildren := make([]child, len(c.v.Items))
		for i, item := range c.v.Items {
			grandchildren[i] = child{
				v:    item,
				path: c.path.Child(value.Index(i)),
				last: i == len(c.v.Items)-1,
			}
		}
		f.siblings(grandchildren, depth+1, out)
		*out = append(*out, closeRow(RowArrayClose, c.path, depth, c.last))

	default:
		*out = append(*out, buildRow(RowScalar, c.path, depth, c.key, c.hasKey, scalarText(c.v), c.last, 0))
	}
}
