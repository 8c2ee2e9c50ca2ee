package shootout

import (
	"errors"

	"github.com/tripcart/internal/constants"
)

// ErrProgressInvalid 恢复的比赛进度不合法
var ErrProgressInvalid = errors.New("shootout progress invalid")

// Game 一局射门比赛（固定射门次数）
type Game struct {
	Difficulty Difficulty `json:"difficulty"`
	TotalShots int        `json:"total_shots"`
	Taken      int        `json:"taken"`
	Goals      int        `json:"goals"`
	Saves      int        `json:"saves"`
}

// NewGame 创建新比赛
func NewGame(difficulty Difficulty) *Game {
	return &Game{Difficulty: difficulty, TotalShots: constants.ShotsPerGame}
}

// Resume 按已射门次数与进球数恢复比赛
func Resume(difficulty Difficulty, taken, goals int) (*Game, error) {
	if taken < 0 || taken >= constants.ShotsPerGame || goals < 0 || goals > taken {
		return nil, ErrProgressInvalid
	}
	game := NewGame(difficulty)
	game.Taken = taken
	game.Goals = goals
	return game, nil
}

// Finished 是否已射完
func (g *Game) Finished() bool {
	return g.Taken >= g.TotalShots
}

// Take 进行一次射门；力量不足不计入射门次数
func (g *Game) Take(shot Shot, rnd RandomSource) (Result, error) {
	if g.Finished() {
		return Result{}, ErrGameFinished
	}
	result, err := ResolveShot(shot, g.Difficulty, rnd)
	if err != nil {
		return Result{}, err
	}
	g.Taken++
	switch result.Outcome {
	case OutcomeGoal:
		g.Goals++
	case OutcomeSaved:
		g.Saves++
	}
	return result, nil
}

// Summary 比赛总结
func (g *Game) Summary() Summary {
	return Summarize(g.Goals, g.Taken)
}
