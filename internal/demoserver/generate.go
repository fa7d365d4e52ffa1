package demoserver

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/smartest/internal/catalog"
	"github.com/abhisek/smartest/internal/options"
	"github.com/abhisek/smartest/internal/rules"
)

// question is a generated question together with its grader.
type question struct {
	ID    string
	Sel   catalog.Selection
	Text  string
	Meta  map[string]any
	grade func(answer string) map[string]any
}

// wire returns the question as served by POST /api/question.
func (q *question) wire() map[string]any {
	return map[string]any{
		"question_id":       q.ID,
		"question_text":     q.Text,
		"chapter_number":    q.Sel.Chapter,
		"subchapter_number": q.Sel.Subchapter,
		"meta":              q.Meta,
	}
}

type generator func(rng *rand.Rand, rec options.Record) (*question, error)

var generators = map[rules.Kind]generator{
	rules.KindSearchStrategies: genSearch,
	rules.KindNash:             genNash,
	rules.KindMinMax:           genMinMax,
	rules.KindCSP:              genCSP,
}

func newQuestion(typ, text string, rec options.Record, grade func(string) map[string]any) *question {
	return &question{
		Text: text,
		Meta: map[string]any{
			"type":       typ,
			"difficulty": string(rec.Tier()),
			"options":    rec.Map(),
		},
		grade: grade,
	}
}

// verdict builds a check body.
func verdict(correct bool, score float64, answer any, extra map[string]any) map[string]any {
	out := map[string]any{
		"ok":             true,
		"correct":        correct,
		"score":          score,
		"correct_answer": answer,
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func unreadable(err error, answer any) map[string]any {
	return verdict(false, 0, answer, map[string]any{"message": "Could not read answer: " + err.Error()})
}

func percent(num, den int) float64 {
	if den == 0 {
		return 100
	}
	return float64(int(float64(num)/float64(den)*1000+0.5)) / 10
}

func exactInt(want int) func(string) map[string]any {
	return func(answer string) map[string]any {
		got, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil {
			return unreadable(fmt.Errorf("expected an integer"), want)
		}
		if got == want {
			return verdict(true, 100, want, nil)
		}
		return verdict(false, 0, want, nil)
	}
}

func genSearch(rng *rand.Rand, rec options.Record) (*question, error) {
	problem, _ := rec.String(rules.FieldProblem)
	size, _ := rec.Int(rules.FieldSize)

	switch problem {
	case "nqueens":
		return genQueens(size, rec), nil
	case "graph_coloring":
		return genColoring(rng, size, rec), nil
	case "knights_tour":
		r, c := rng.IntN(size), rng.IntN(size)
		want := knightMoves(size, r, c)
		text := fmt.Sprintf("On a %d×%d board, how many legal moves does a knight have from row %d, column %d?", size, size, r+1, c+1)
		q := newQuestion("knights_tour", text, rec, exactInt(want))
		q.Meta["n"] = size
		return q, nil
	case "generalized_hanoi":
		return genHanoi(rng, size, rec), nil
	default:
		return nil, fmt.Errorf("unsupported search problem %q", problem)
	}
}

func genQueens(n int, rec options.Record) *question {
	start := time.Now()
	want := queensBacktrack(n)
	backtrack := time.Since(start)

	start = time.Now()
	queensBitmask(n)
	bitmask := time.Since(start)

	times := map[string]float64{
		"backtracking": float64(backtrack.Microseconds()) / 1000,
		"bitmask":      float64(bitmask.Microseconds()) / 1000,
	}
	fastest := "backtracking"
	if bitmask < backtrack {
		fastest = "bitmask"
	}

	text := fmt.Sprintf("How many distinct solutions does the N-Queens puzzle have on a %d×%d board?", n, n)
	q := newQuestion("nqueens", text, rec, func(answer string) map[string]any {
		res := exactInt(want)(answer)
		res["type"] = "nqueens"
		res["problem_name"] = "N-Queens"
		res["fastest_algorithm"] = fastest
		res["execution_times"] = times
		return res
	})
	q.Meta["n"] = n
	return q
}

func genColoring(rng *rand.Rand, n int, rec options.Record) *question {
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
	}
	var edges []string
	var pairs [][2]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < 0.35 {
				adj[i][j], adj[j][i] = true, true
				edges = append(edges, fmt.Sprintf("%d-%d", i+1, j+1))
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	reference := greedyColoring(adj)
	k := slices.Max(reference)
	refText := joinInts(reference)

	if len(edges) == 0 {
		edges = []string{"(none)"}
	}
	text := fmt.Sprintf("Color nodes 1..%d using colors 1..%d so that no edge joins two nodes of the same color.\nEdges: %s\nAnswer with one color per node, comma separated.",
		n, k, strings.Join(edges, ", "))

	q := newQuestion("graph_coloring", text, rec, func(answer string) map[string]any {
		colors, err := parseInts(answer)
		if err != nil {
			return unreadable(err, refText)
		}
		if len(colors) != n {
			return unreadable(fmt.Errorf("expected %d colors, got %d", n, len(colors)), refText)
		}
		outOfRange := 0
		for _, c := range colors {
			if c < 1 || c > k {
				outOfRange++
			}
		}
		conflicts := 0
		for _, p := range pairs {
			if colors[p[0]] == colors[p[1]] {
				conflicts++
			}
		}
		ok := conflicts == 0 && outOfRange == 0
		return verdict(ok, percent(len(pairs)-conflicts, len(pairs)), refText, map[string]any{
			"conflicts":    conflicts,
			"out_of_range": outOfRange,
			"max_colors":   k,
		})
	})
	q.Meta["nodes"] = n
	q.Meta["max_colors"] = k
	return q
}

func genHanoi(rng *rand.Rand, disks int, rec options.Record) *question {
	want := hanoiMoves(disks)
	candidates := []int{want}
	for _, c := range []int{want + 1, want - 1, 1 << disks, disks * disks, 2 * disks} {
		if c > 0 && !slices.Contains(candidates, c) {
			candidates = append(candidates, c)
		}
		if len(candidates) == 4 {
			break
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

	labels := make([]any, len(candidates))
	keys := make([]any, len(candidates))
	for i, c := range candidates {
		labels[i] = fmt.Sprintf("%d moves", c)
		keys[i] = strconv.Itoa(c)
	}

	text := fmt.Sprintf("What is the minimum number of moves to transfer a tower of %d disks between two of three pegs?", disks)
	q := newQuestion("generalized_hanoi", text, rec, exactInt(want))
	q.Meta["disks"] = disks
	q.Meta["answer_options"] = labels
	q.Meta["answer_option_keys"] = keys
	return q
}

func genNash(rng *rand.Rand, rec options.Record) (*question, error) {
	m, okM := rec.Int(rules.FieldM)
	n, okN := rec.Int(rules.FieldN)
	if !okM || !okN {
		size, _ := rec.Int(rules.FieldSize)
		m, n = size, size
	}

	a := make([][]int, m)
	b := make([][]int, m)
	var rows []string
	for i := range a {
		a[i] = make([]int, n)
		b[i] = make([]int, n)
		cells := make([]string, n)
		for j := range a[i] {
			a[i][j], b[i][j] = rng.IntN(10), rng.IntN(10)
			cells[j] = fmt.Sprintf("(%d,%d)", a[i][j], b[i][j])
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	want := pureNash(a, b)
	wantText := formatCells(want)

	text := fmt.Sprintf("Find all pure Nash equilibria of the %d×%d game below (row player payoff, column player payoff).\n%s\nAnswer as row,col pairs separated by ';', or 'none'.",
		m, n, strings.Join(rows, "\n"))

	q := newQuestion("nash", text, rec, func(answer string) map[string]any {
		got, err := parseCells(answer)
		if err != nil {
			return unreadable(err, wantText)
		}
		hits, wrong := 0, 0
		for _, c := range got {
			if slices.Contains(want, c) {
				hits++
			} else {
				wrong++
			}
		}
		missing := len(want) - hits
		return verdict(wrong == 0 && missing == 0, percent(hits, hits+wrong+missing), wantText, map[string]any{
			"hits":    hits,
			"missing": missing,
			"wrong":   wrong,
		})
	})
	q.Meta["rows"] = m
	q.Meta["cols"] = n
	return q, nil
}

func genMinMax(rng *rand.Rand, rec options.Record) (*question, error) {
	depth, _ := rec.Int(rules.FieldDepth)
	branching, _ := rec.Int(rules.FieldBranching)
	root, _ := rec.String(rules.FieldRootPlayer)

	total := 1
	for i := 0; i < depth; i++ {
		total *= branching
	}
	leaves := make([]int, total)
	for i := range leaves {
		leaves[i] = rng.IntN(19) - 9
	}
	want, visited := alphaBeta(leaves, branching, depth, root != "MIN")

	text := fmt.Sprintf("A complete game tree has depth %d and branching factor %d. %s moves at the root and players alternate.\nLeaves, left to right: %s\nWhat is the minimax value of the root?",
		depth, branching, root, joinInts(leaves))

	q := newQuestion("minmax", text, rec, func(answer string) map[string]any {
		res := exactInt(want)(answer)
		res["leaves_evaluated"] = visited
		res["total_leaves"] = total
		return res
	})
	q.Meta["root_player"] = root
	return q, nil
}

func genCSP(rng *rand.Rand, rec options.Record) (*question, error) {
	nVars, _ := rec.Int(rules.FieldNumVars)
	nCons, _ := rec.Int(rules.FieldNumConstraints)
	lo, _ := rec.Int(rules.FieldDomainMinSize)
	hi, _ := rec.Int(rules.FieldDomainMaxSize)

	domains := make([]int, nVars)
	hidden := make([]int, nVars)
	var doms []string
	for i := range domains {
		domains[i] = lo + rng.IntN(hi-lo+1)
		hidden[i] = 1 + rng.IntN(domains[i])
		doms = append(doms, fmt.Sprintf("X%d ∈ {1..%d}", i+1, domains[i]))
	}

	cons := make([]relation, 0, nCons)
	var consText []string
	for len(cons) < nCons {
		x := rng.IntN(nVars)
		y := rng.IntN(nVars - 1)
		if y >= x {
			y++
		}
		r := relation{X: x, Y: y}
		switch a, b := hidden[x], hidden[y]; {
		case a == b:
			r.Op = "="
		case rng.IntN(2) == 0:
			r.Op = "!="
		case a < b:
			r.Op = "<"
		default:
			r.Op = ">"
		}
		cons = append(cons, r)
		consText = append(consText, fmt.Sprintf("X%d %s X%d", x+1, r.Op, y+1))
	}
	wantText := formatAssignment(hidden)

	text := fmt.Sprintf("Find an assignment satisfying every constraint.\nDomains: %s\nConstraints: %s\nAnswer as X1=<v>, X2=<v>, ...",
		strings.Join(doms, ", "), strings.Join(consText, ", "))

	q := newQuestion("csp", text, rec, func(answer string) map[string]any {
		got, err := parseAssignment(answer)
		if err != nil {
			return unreadable(err, wantText)
		}
		unassigned, outOfDomain := 0, 0
		for i, d := range domains {
			v, ok := got[i+1]
			switch {
			case !ok:
				unassigned++
			case v < 1 || v > d:
				outOfDomain++
			}
		}
		satisfied := 0
		for _, r := range cons {
			a, okA := got[r.X+1]
			b, okB := got[r.Y+1]
			if okA && okB && r.holds(a, b) {
				satisfied++
			}
		}
		ok := unassigned == 0 && outOfDomain == 0 && satisfied == len(cons)
		return verdict(ok, percent(satisfied, len(cons)), wantText, map[string]any{
			"satisfied":     satisfied,
			"violated":      len(cons) - satisfied,
			"unassigned":    unassigned,
			"out_of_domain": outOfDomain,
		})
	})
	q.Meta["num_vars"] = nVars
	return q, nil
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", f)
		}
		out = append(out, n)
	}
	return out, nil
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

// randomOptions draws a record uniformly from the tier's ranges, the way
// batch tests vary their questions.
func randomOptions(rng *rand.Rand, kind rules.Kind, tier rules.Tier) options.Record {
	raw := map[string]string{}
	variant := ""
	if vf, ok := rules.VariantField(kind); ok {
		spec := rules.ConstraintsFor(kind, tier, vf)
		if len(spec.Choices) > 0 {
			variant = spec.Choices[rng.IntN(len(spec.Choices))]
			raw[string(vf)] = variant
		}
	}
	for _, fd := range rules.FieldsFor(kind, tier) {
		if _, set := raw[string(fd.Name)]; set {
			continue
		}
		spec := rules.ConstraintsForVariant(kind, tier, variant, fd.Name)
		switch {
		case fd.Type == rules.Numeric && spec.Max >= spec.Min:
			raw[string(fd.Name)] = strconv.Itoa(spec.Min + rng.IntN(spec.Max-spec.Min+1))
		case len(spec.Choices) > 0:
			raw[string(fd.Name)] = spec.Choices[rng.IntN(len(spec.Choices))]
		}
	}
	return options.Build(kind, tier, raw)
}
