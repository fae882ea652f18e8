package query

import (
	"sort"
	"strconv"
	"strings"

	"github.com/VanshTheJudged/mcp-server/internal/store"
)

// Pagination bounds applied when the configuration does not override them.
const (
	DefaultLimit    = 10
	DefaultMaxLimit = 50
)

// SortDirDesc is the sort direction value selecting descending order. Any
// other value sorts ascending.
const SortDirDesc = "desc"

// Sort selects the field and direction of an optional result ordering.
type Sort struct {
	Field string `json:"field"`
	Dir   string `json:"dir,omitempty"`
}

// Params are the inputs of a single pipeline run, assembled by a protocol
// adapter from its request envelope.
type Params struct {
	Filters []Condition
	Sort    *Sort
	Limit   int
	Offset  int
}

// Page is a bounded slice of the filtered result set. Total counts the
// matches before pagination, Showing the records actually returned.
type Page struct {
	Total   int            `json:"total"`
	Showing int            `json:"showing"`
	Offset  int            `json:"offset"`
	Results []store.Record `json:"results"`
}

// Pipeline runs filter, normalize, sort and paginate over a store snapshot.
// It is stateless apart from its configuration and safe for concurrent use.
type Pipeline struct {
	defaultLimit int
	maxLimit     int
	sentinel     string
}

// NewPipeline creates a pipeline with the given pagination bounds and
// missing-value sentinel. Non-positive bounds and an empty sentinel fall back
// to the package defaults.
func NewPipeline(defaultLimit, maxLimit int, sentinel string) *Pipeline {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = DefaultMaxLimit
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	if sentinel == "" {
		sentinel = DefaultSentinel
	}
	return &Pipeline{
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		sentinel:     sentinel,
	}
}

// Sentinel returns the missing-value placeholder this pipeline substitutes.
func (p *Pipeline) Sentinel() string {
	return p.sentinel
}

// MaxLimit returns the upper bound enforced on page sizes.
func (p *Pipeline) MaxLimit() int {
	return p.maxLimit
}

// Run executes a read-only query against st: records failing any filter
// condition are dropped, survivors are normalized, optionally sorted, then
// sliced to the requested window. Total always counts the full filtered set
// regardless of pagination.
func (p *Pipeline) Run(st *store.Store, params Params) *Page {
	matched := make([]store.Record, 0, st.Len())
	for _, rec := range st.Records() {
		if MatchesAll(rec, params.Filters) {
			matched = append(matched, Normalize(rec, p.sentinel))
		}
	}
	total := len(matched)

	if params.Sort != nil && params.Sort.Field != "" {
		sortRecords(matched, *params.Sort)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = p.defaultLimit
	}
	if limit > p.maxLimit {
		limit = p.maxLimit
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	results := []store.Record{}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		results = matched[offset:end]
	}

	return &Page{
		Total:   total,
		Showing: len(results),
		Offset:  offset,
		Results: results,
	}
}

// sortRecords orders records by the sort field, numerically when both values
// parse as numbers and lexicographically otherwise. The sort is stable so
// records with equal keys keep their load order.
func sortRecords(records []store.Record, s Sort) {
	desc := strings.EqualFold(s.Dir, SortDirDesc)
	sort.SliceStable(records, func(i, j int) bool {
		if desc {
			return valueLess(records[j][s.Field], records[i][s.Field])
		}
		return valueLess(records[i][s.Field], records[j][s.Field])
	})
}

func valueLess(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return fa < fb
	}
	return a < b
}
