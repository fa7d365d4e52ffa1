package demoserver

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// queensBacktrack counts N-Queens solutions with column/diagonal sets.
func queensBacktrack(n int) int {
	cols := make([]bool, n)
	diag := make([]bool, 2*n)
	anti := make([]bool, 2*n)
	var place func(row int) int
	place = func(row int) int {
		if row == n {
			return 1
		}
		count := 0
		for c := 0; c < n; c++ {
			if cols[c] || diag[row+c] || anti[row-c+n] {
				continue
			}
			cols[c], diag[row+c], anti[row-c+n] = true, true, true
			count += place(row + 1)
			cols[c], diag[row+c], anti[row-c+n] = false, false, false
		}
		return count
	}
	return place(0)
}

// queensBitmask counts N-Queens solutions with bitboards.
func queensBitmask(n int) int {
	full := uint(1)<<n - 1
	var place func(cols, ld, rd uint) int
	place = func(cols, ld, rd uint) int {
		if cols == full {
			return 1
		}
		count := 0
		free := full &^ (cols | ld | rd)
		for free != 0 {
			bit := free & -free
			free ^= bit
			count += place(cols|bit, (ld|bit)<<1&full, (rd|bit)>>1)
		}
		return count
	}
	return place(0, 0, 0)
}

// knightMoves counts legal knight moves from (r, c) on an n×n board.
func knightMoves(n, r, c int) int {
	deltas := [8][2]int{{1, 2}, {2, 1}, {-1, 2}, {-2, 1}, {1, -2}, {2, -1}, {-1, -2}, {-2, -1}}
	count := 0
	for _, d := range deltas {
		rr, cc := r+d[0], c+d[1]
		if rr >= 0 && rr < n && cc >= 0 && cc < n {
			count++
		}
	}
	return count
}

// hanoiMoves is the optimal three-peg move count for disks disks.
func hanoiMoves(disks int) int {
	return 1<<disks - 1
}

// greedyColoring colors nodes in order with the lowest free color (1-based).
func greedyColoring(adj [][]bool) []int {
	colors := make([]int, len(adj))
	for v := range adj {
		used := map[int]bool{}
		for u := 0; u < v; u++ {
			if adj[v][u] {
				used[colors[u]] = true
			}
		}
		c := 1
		for used[c] {
			c++
		}
		colors[v] = c
	}
	return colors
}

// cell is a 1-based (row, column) strategy profile.
type cell struct{ Row, Col int }

func (c cell) String() string { return fmt.Sprintf("%d,%d", c.Row, c.Col) }

// pureNash returns the pure-strategy equilibria of a bimatrix game, in
// row-major order.
func pureNash(a, b [][]int) []cell {
	var out []cell
	for i := range a {
		for j := range a[i] {
			best := true
			for k := range a {
				if a[k][j] > a[i][j] {
					best = false
					break
				}
			}
			for k := range b[i] {
				if !best || b[i][k] > b[i][j] {
					best = false
					break
				}
			}
			if best {
				out = append(out, cell{i + 1, j + 1})
			}
		}
	}
	return out
}

// parseCells parses "r,c; r,c" profiles. "none" and "" yield no cells.
func parseCells(s string) ([]cell, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "none" {
		return nil, nil
	}
	var out []cell
	for _, part := range strings.Split(s, ";") {
		part = strings.Trim(strings.TrimSpace(part), "()")
		if part == "" {
			continue
		}
		rs, cs, ok := strings.Cut(part, ",")
		if !ok {
			return nil, fmt.Errorf("invalid profile %q: want row,col", part)
		}
		r, err1 := strconv.Atoi(strings.TrimSpace(rs))
		c, err2 := strconv.Atoi(strings.TrimSpace(cs))
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("invalid profile %q: want row,col", part)
		}
		if !slices.Contains(out, cell{r, c}) {
			out = append(out, cell{r, c})
		}
	}
	return out, nil
}

func formatCells(cs []cell) string {
	if len(cs) == 0 {
		return "none"
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, "; ")
}

// alphaBeta evaluates a complete tree stored as its leaves, left to right,
// and returns the root value and how many leaves were evaluated.
func alphaBeta(leaves []int, branching, depth int, maximize bool) (value, visited int) {
	var eval func(lo, span, d, alpha, beta int, maxTurn bool) int
	eval = func(lo, span, d, alpha, beta int, maxTurn bool) int {
		if d == 0 {
			visited++
			return leaves[lo]
		}
		child := span / branching
		if maxTurn {
			v := math.MinInt
			for i := 0; i < branching; i++ {
				v = max(v, eval(lo+i*child, child, d-1, alpha, beta, false))
				alpha = max(alpha, v)
				if alpha >= beta {
					break
				}
			}
			return v
		}
		v := math.MaxInt
		for i := 0; i < branching; i++ {
			v = min(v, eval(lo+i*child, child, d-1, alpha, beta, true))
			beta = min(beta, v)
			if alpha >= beta {
				break
			}
		}
		return v
	}
	value = eval(0, len(leaves), depth, math.MinInt, math.MaxInt, maximize)
	return value, visited
}

// relation is a binary CSP constraint between two variables.
type relation struct {
	X, Y int
	Op   string
}

func (r relation) holds(a, b int) bool {
	switch r.Op {
	case "!=":
		return a != b
	case "<":
		return a < b
	case ">":
		return a > b
	default:
		return a == b
	}
}

// parseAssignment parses "X1=3, X2=1" into a 1-based variable map.
func parseAssignment(s string) (map[int]int, error) {
	out := map[int]int{}
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
		name, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return nil, fmt.Errorf("invalid assignment %q: want X<i>=<value>", part)
		}
		name = strings.ToUpper(strings.TrimSpace(name))
		idx, err := strconv.Atoi(strings.TrimPrefix(name, "X"))
		if err != nil || !strings.HasPrefix(name, "X") {
			return nil, fmt.Errorf("invalid variable %q", name)
		}
		v, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %q", name, val)
		}
		out[idx] = v
	}
	return out, nil
}

func formatAssignment(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("X%d=%d", i+1, v)
	}
	return strings.Join(parts, ", ")
}
