// Package services implements the tombola core's card generation and score
// engine. The game/client registries and dump persistence live in the
// registry and persistence packages.
package services

import (
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/bellapacxx/tombola-server/models"
	"github.com/bellapacxx/tombola-server/utils/apperr"
)

// maxGroupRegenerations bounds the retry budget for producing a group of
// six cards whose card ids don't collide with each other or with an
// already-assigned id. Exceeding it is reported as an internal error, per
// spec: "never return an invalid card."
const maxGroupRegenerations = 100

// antiAdjacencyPattern: for each of the 6 cards, the 0-indexed columns that
// get only 1 number instead of 2 (grounded on original_source/src/card.rs).
var antiAdjacencyPattern = [models.CardsPerGroup][3]int{
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{1, 5, 6},
	{2, 3, 7},
}

// GenerateGroup produces six cards whose numbers partition {1..90}
// exactly, satisfying the per-card and per-group invariants in spec §4.1.
// idTaken reports whether a candidate card id is already assigned
// elsewhere in the caller's registry, so the generator can retry on
// collision instead of ever returning a duplicate id.
func GenerateGroup(idTaken func(id string) bool) ([models.CardsPerGroup]models.Card, [models.CardsPerGroup]string, error) {
	var cards [models.CardsPerGroup]models.Card
	var ids [models.CardsPerGroup]string

	for attempt := 0; attempt < maxGroupRegenerations; attempt++ {
		group := buildGroup()

		seen := make(map[string]bool, models.CardsPerGroup)
		ok := true
		for i, c := range group {
			id := cardID(c)
			if seen[id] || idTaken(id) {
				ok = false
				break
			}
			seen[id] = true
			cards[i] = c
			ids[i] = id
		}
		if ok {
			return cards, ids, nil
		}
	}

	return cards, ids, apperr.Wrap(apperr.Internal, "card generation could not converge on unique ids", nil)
}

// buildGroup runs the five-step constructive algorithm: column
// distribution, allocation matrix with anti-adjacency, number
// distribution, row placement, and group shuffle.
func buildGroup() [models.CardsPerGroup]models.Card {
	allocation := allocationMatrix()
	cardColumns := distributeNumbers(allocation)
	cards := positionNumbers(cardColumns)

	order := [models.CardsPerGroup]int{0, 1, 2, 3, 4, 5}
	rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	var shuffled [models.CardsPerGroup]models.Card
	for i, idx := range order {
		shuffled[i] = cards[idx]
	}
	return shuffled
}

// allocationMatrix returns, per card per column, how many numbers (1 or 2)
// that card takes from that column.
func allocationMatrix() [models.CardsPerGroup][models.Cols]int {
	var m [models.CardsPerGroup][models.Cols]int
	for c := range m {
		for col := range m[c] {
			m[c][col] = 2
		}
	}
	for card, cols := range antiAdjacencyPattern {
		for _, col := range cols {
			m[card][col] = 1
		}
	}
	return m
}

// distributeNumbers hands out each column's candidate numbers to the six
// cards per the allocation matrix. Column 0 temporarily borrows 90 from
// column 8 so both columns have 10 candidates, matching
// original_source/src/card.rs's uniform-allocation trick.
func distributeNumbers(allocation [models.CardsPerGroup][models.Cols]int) [models.CardsPerGroup][models.Cols][]int {
	var out [models.CardsPerGroup][models.Cols][]int

	for col := 0; col < models.Cols; col++ {
		var pool []int
		switch col {
		case 0:
			for n := 1; n <= 9; n++ {
				pool = append(pool, n)
			}
			pool = append(pool, 90)
		case models.Cols - 1:
			for n := 80; n <= 89; n++ {
				pool = append(pool, n)
			}
		default:
			lo, hi := models.ColumnRange(col)
			for n := lo; n <= hi; n++ {
				pool = append(pool, n)
			}
		}
		rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		if col == 0 {
			// 90 moves to column 8 later: keep it on a card that takes two
			// column-0 numbers, so no card's column 0 ends up empty.
			var single []bool
			for card := 0; card < models.CardsPerGroup; card++ {
				for i := 0; i < allocation[card][col]; i++ {
					single = append(single, allocation[card][col] == 1)
				}
			}
			for i := range single {
				if pool[i] == 90 && single[i] {
					j := 0
					for single[j] {
						j++
					}
					pool[i], pool[j] = pool[j], pool[i]
				}
			}
		}

		idx := 0
		for card := 0; card < models.CardsPerGroup; card++ {
			qty := allocation[card][col]
			for i := 0; i < qty && idx < len(pool); i++ {
				out[card][col] = append(out[card][col], pool[idx])
				idx++
			}
			sortInts(out[card][col])
		}
	}
	return out
}

// positionNumbers moves 90 back to column 8 and assigns each column's
// numbers to rows, greedily balancing row counts to 5 each.
func positionNumbers(cardColumns [models.CardsPerGroup][models.Cols][]int) [models.CardsPerGroup]models.Card {
	var cards [models.CardsPerGroup]models.Card

	for i := range cardColumns {
		col0 := cardColumns[i][0]
		for j, n := range col0 {
			if n == 90 {
				cardColumns[i][0] = append(col0[:j], col0[j+1:]...)
				last := models.Cols - 1
				cardColumns[i][last] = append(cardColumns[i][last], 90)
				sortInts(cardColumns[i][last])
				break
			}
		}
	}

	for i, cols := range cardColumns {
		rowAssignment := rowAssignments(cols)

		var grid [models.Rows][models.Cols]*int
		for col := 0; col < models.Cols; col++ {
			// cols[col] is ascending (sorted in distributeNumbers); pairing
			// it with ascending row indices keeps each column's non-empty
			// cells sorted top-to-bottom, per spec.
			for pos, n := range cols[col] {
				row := rowAssignment[col][pos]
				v := n
				grid[row][col] = &v
			}
		}
		cards[i] = grid
	}

	return cards
}

// rowAssignments assigns each column's numbers to the row with the fewest
// numbers so far, producing exactly 5 numbers per row across 9 columns.
// The row indices returned for a given column are themselves ascending,
// so zipping them with that column's (already ascending) numbers keeps
// the column sorted top-to-bottom.
func rowAssignments(cols [models.Cols][]int) [models.Cols][]int {
	var assignment [models.Cols][]int
	var rowCounts [models.Rows]int

	for col := 0; col < models.Cols; col++ {
		var rows []int
		for range cols[col] {
			minRow := 0
			for r := 1; r < models.Rows; r++ {
				if rowCounts[r] < rowCounts[minRow] {
					minRow = r
				}
			}
			rows = append(rows, minRow)
			rowCounts[minRow]++
		}
		sortInts(rows)
		assignment[col] = rows
	}
	return assignment
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// cardID derives a 16-uppercase-hex-character id from a card's 27 cells.
func cardID(c models.Card) string {
	h := fnv.New64a()
	for r := 0; r < models.Rows; r++ {
		for col := 0; col < models.Cols; col++ {
			if c[r][col] == nil {
				h.Write([]byte{0})
			} else {
				h.Write([]byte{byte(*c[r][col])})
			}
		}
	}
	return fmt.Sprintf("%016X", h.Sum64())
}
