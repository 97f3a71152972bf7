package services

import (
	"sort"

	"github.com/bellapacxx/tombola-server/models"
)

// cardScore is one card's current best achievement: the highest line level
// (2..5) it has reached, or BINGO (15), as of the board passed to Evaluate.
type cardScore struct {
	clientID string
	cardID   string
	level    int
	numbers  []int
}

// evaluateCard computes card's current best achievement against board.
// BINGO (all 15 numbers drawn) takes priority over any line achievement.
// Among a card's three rows, the first (lowest-indexed) row reaching the
// highest drawn-count is used — row order within a single card is not
// spec-significant, only the tie-break across different cards is.
func evaluateCard(clientID, cardID string, card models.Card, board *models.Board) cardScore {
	nums := card.Numbers()
	drawn := 0
	for _, n := range nums {
		if board.Contains(n) {
			drawn++
		}
	}
	if drawn == models.NumbersPerCard {
		return cardScore{clientID: clientID, cardID: cardID, level: models.NumbersPerCard, numbers: nums}
	}

	bestLevel := 0
	var bestNumbers []int
	for r := 0; r < models.Rows; r++ {
		var drawnInRow []int
		for _, n := range card.Row(r) {
			if board.Contains(n) {
				drawnInRow = append(drawnInRow, n)
			}
		}
		if len(drawnInRow) > bestLevel {
			bestLevel = len(drawnInRow)
			bestNumbers = drawnInRow
		}
	}
	if bestLevel < 2 {
		return cardScore{clientID: clientID, cardID: cardID, level: 0}
	}
	return cardScore{clientID: clientID, cardID: cardID, level: bestLevel, numbers: bestNumbers}
}

// Evaluate recomputes achievements for every card assignment against
// board, and — following spec §4.3's publish rule — advances sc in place:
// if the highest level now reached by any card exceeds sc.PublishedScore,
// every intervening level that has no recorded achievements yet gets the
// achievements currently exhibiting it, and PublishedScore advances to the
// new maximum. Re-evaluating the same board always yields the same
// score_map contents (idempotence), because achievement ordering within a
// level is fixed by tie-break, not by map iteration order.
func Evaluate(board *models.Board, assignments map[string]*models.CardAssignment, sc *models.ScoreCard) {
	scores := make([]cardScore, 0, len(assignments))
	for cardID, a := range assignments {
		scores = append(scores, evaluateCard(a.ClientID, cardID, a.CardData, board))
	}
	sort.Slice(scores, func(i, j int) bool {
		iBoard := scores[i].cardID == models.ReservedID
		jBoard := scores[j].cardID == models.ReservedID
		if iBoard != jBoard {
			return jBoard // non-board before board
		}
		if scores[i].clientID != scores[j].clientID {
			return scores[i].clientID < scores[j].clientID
		}
		return scores[i].cardID < scores[j].cardID
	})

	maxNew := 0
	for _, s := range scores {
		if s.level > maxNew {
			maxNew = s.level
		}
	}
	if maxNew <= sc.PublishedScore {
		return
	}

	for _, level := range models.ScoreLevels {
		if level <= sc.PublishedScore || level > maxNew {
			continue
		}
		if _, exists := sc.ScoreMap[level]; exists {
			continue
		}
		var achievements []models.ScoreAchievement
		for _, s := range scores {
			if s.level == level {
				achievements = append(achievements, models.ScoreAchievement{
					ClientID: s.clientID,
					CardID:   s.cardID,
					Numbers:  s.numbers,
				})
			}
		}
		if len(achievements) > 0 {
			sc.ScoreMap[level] = achievements
		}
	}

	sc.PublishedScore = maxNew
}
