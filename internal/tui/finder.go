package tui

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/jask/multicol/internal/board"
)

// finder is the jump-to prompt. It matches containers and items by id.
type finder struct {
	open  bool
	input textinput.Model
}

func newFinder() finder {
	inp := textinput.New()
	inp.Prompt = "/ "
	inp.Placeholder = "item or column"
	inp.CharLimit = 64
	inp.Cursor.SetMode(cursor.CursorStatic)
	return finder{input: inp}
}

func (f *finder) show() {
	f.open = true
	f.input.SetValue("")
	f.input.Focus()
}

func (f *finder) hide() {
	f.open = false
	f.input.Blur()
}

// Score bands: prefix hits in [0, substringBand), substring hits in
// [substringBand, fuzzyBand), fuzzy matches from fuzzyBand up.
const (
	substringBand = 16
	fuzzyBand     = 64
)

// matchScore ranks id against query; lower is better. Prefix hits always beat
// substring hits, which always beat fuzzy ones.
func matchScore(query string, id board.ID) int {
	q, s := strings.ToLower(query), strings.ToLower(string(id))
	extra := len(s) - len(q)
	if strings.HasPrefix(s, q) {
		return min(extra, substringBand-1)
	}
	if strings.Contains(s, q) {
		return substringBand + min(extra, fuzzyBand-substringBand-1)
	}
	return fuzzyBand + levenshtein.ComputeDistance(q, s)
}

// rankMatches orders ids by how well they match query. Ids that share nothing
// with query are dropped.
func rankMatches(query string, ids []board.ID) []board.ID {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	type scored struct {
		id    board.ID
		score int
	}
	limit := fuzzyBand + max(1, len(query)/2)
	var hits []scored
	for _, id := range ids {
		if score := matchScore(query, id); score <= limit {
			hits = append(hits, scored{id, score})
		}
	}
	slices.SortStableFunc(hits, func(a, b scored) int { return cmp.Compare(a.score, b.score) })
	out := make([]board.ID, len(hits))
	for i, h := range hits {
		out[i] = h.id
	}
	return out
}

// searchable lists containers and their items in display order.
func searchable(b *board.Board) []board.ID {
	var out []board.ID
	for _, c := range b.Containers() {
		out = append(out, c)
		out = append(out, b.Items(c)...)
	}
	return out
}
