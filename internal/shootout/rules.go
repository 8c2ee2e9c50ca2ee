package shootout

import (
	"errors"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/tripcart/internal/constants"
)

var (
	ErrPowerTooLow       = errors.New("shot power too low")
	ErrZoneInvalid       = errors.New("shot zone invalid")
	ErrDifficultyInvalid = errors.New("difficulty invalid")
	ErrGameFinished      = errors.New("all shots taken")
)

// 射门判定距离：守门员与射门区域横向距离小于该值视为贴近
const saveDistance = 25

// Outcome 射门结果
type Outcome string

const (
	OutcomeMiss  Outcome = "miss"
	OutcomeSaved Outcome = "saved"
	OutcomeGoal  Outcome = "goal"
)

// Zone 射门区域
type Zone string

const (
	ZoneTopLeft      Zone = "top-left"
	ZoneTopCenter    Zone = "top-center"
	ZoneTopRight     Zone = "top-right"
	ZoneBottomLeft   Zone = "bottom-left"
	ZoneBottomCenter Zone = "bottom-center"
	ZoneBottomRight  Zone = "bottom-right"
)

// Zones 全部射门区域
var Zones = []Zone{ZoneTopLeft, ZoneTopCenter, ZoneTopRight, ZoneBottomLeft, ZoneBottomCenter, ZoneBottomRight}

// X 区域横向位置（百分比）
func (z Zone) X() float64 {
	switch {
	case strings.HasSuffix(string(z), "left"):
		return 25
	case strings.HasSuffix(string(z), "right"):
		return 75
	default:
		return 50
	}
}

// goalieX 守门员扑向该区域时的横向位置
func (z Zone) goalieX() float64 {
	switch {
	case strings.Contains(string(z), "left"):
		return 35
	case strings.Contains(string(z), "right"):
		return 65
	default:
		return 50
	}
}

// ParseZone 解析区域
func ParseZone(raw string) (Zone, error) {
	zone := Zone(strings.ToLower(strings.TrimSpace(raw)))
	for _, z := range Zones {
		if z == zone {
			return zone, nil
		}
	}
	return "", ErrZoneInvalid
}

// Difficulty 难度参数
type Difficulty struct {
	Name          string  `json:"name"`
	SaveChance    float64 `json:"save_chance"`
	ReactionSpeed float64 `json:"reaction_speed"`
	TelegraphMS   int     `json:"telegraph_ms"`
}

var difficulties = map[string]Difficulty{
	constants.DifficultyEasy:   {Name: constants.DifficultyEasy, SaveChance: 0.25, ReactionSpeed: 0.6, TelegraphMS: 400},
	constants.DifficultyMedium: {Name: constants.DifficultyMedium, SaveChance: 0.45, ReactionSpeed: 0.75, TelegraphMS: 300},
	constants.DifficultyHard:   {Name: constants.DifficultyHard, SaveChance: 0.65, ReactionSpeed: 0.9, TelegraphMS: 200},
}

// ParseDifficulty 解析难度，空值默认 medium
func ParseDifficulty(raw string) (Difficulty, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		name = constants.DifficultyMedium
	}
	d, ok := difficulties[name]
	if !ok {
		return Difficulty{}, ErrDifficultyInvalid
	}
	return d, nil
}

// RandomSource 随机源，返回 [0,1) 区间的浮点数
type RandomSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultRandom 并发安全的全局随机源
var DefaultRandom RandomSource = globalSource{}

// Accuracy 力量对应的命中概率，60~80 为最佳区间
func Accuracy(power int) float64 {
	p := float64(power)
	switch {
	case power < 60:
		return 0.7 + (p/60)*0.3
	case power > 80:
		return 1 - ((p-80)/20)*0.3
	default:
		return 1
	}
}

// Shot 一次射门
type Shot struct {
	Zone  Zone
	Power int
}

// Result 射门判定结果
type Result struct {
	Outcome    Outcome `json:"outcome"`
	OnTarget   bool    `json:"on_target"`
	GoalieZone Zone    `json:"goalie_zone"`
	Accuracy   float64 `json:"accuracy"`
}

// ResolveShot 判定射门结果：命中判定 -> 守门员预判 -> 扑救判定
func ResolveShot(shot Shot, difficulty Difficulty, rnd RandomSource) (Result, error) {
	if shot.Power < constants.MinShotPower {
		return Result{}, ErrPowerTooLow
	}
	if shot.Power > constants.MaxShotPower {
		shot.Power = constants.MaxShotPower
	}
	if _, err := ParseZone(string(shot.Zone)); err != nil {
		return Result{}, err
	}
	if rnd == nil {
		rnd = DefaultRandom
	}

	accuracy := Accuracy(shot.Power)
	result := Result{Accuracy: accuracy, GoalieZone: shot.Zone}
	result.OnTarget = rnd.Float64() < accuracy

	if rnd.Float64() > difficulty.ReactionSpeed {
		index := int(math.Floor(rnd.Float64() * float64(len(Zones))))
		if index >= len(Zones) {
			index = len(Zones) - 1
		}
		result.GoalieZone = Zones[index]
	}

	if !result.OnTarget {
		result.Outcome = OutcomeMiss
		return result, nil
	}

	chance := difficulty.SaveChance * 0.3
	if math.Abs(result.GoalieZone.goalieX()-shot.Zone.X()) < saveDistance {
		chance = difficulty.SaveChance + 0.2
	}
	if rnd.Float64() < chance {
		result.Outcome = OutcomeSaved
	} else {
		result.Outcome = OutcomeGoal
	}
	return result, nil
}

// Summary 比赛总结
type Summary struct {
	Goals       int    `json:"goals"`
	Shots       int    `json:"shots"`
	AccuracyPct int    `json:"accuracy_pct"`
	Title       string `json:"title"`
}

// 总结标题 key（i18n）
const (
	TitlePerfect  = "shootout.title.perfect"
	TitleGreat    = "shootout.title.great"
	TitleNotBad   = "shootout.title.not_bad"
	TitlePractice = "shootout.title.practice"
)

// Summarize 计算命中率与评价
func Summarize(goals, shots int) Summary {
	summary := Summary{Goals: goals, Shots: shots}
	if shots <= 0 {
		summary.Title = TitlePractice
		return summary
	}
	summary.AccuracyPct = int(math.Round(float64(goals) / float64(shots) * 100))
	switch {
	case goals == shots:
		summary.Title = TitlePerfect
	case float64(goals) >= float64(shots)*0.6:
		summary.Title = TitleGreat
	case float64(goals) >= float64(shots)*0.4:
		summary.Title = TitleNotBad
	default:
		summary.Title = TitlePractice
	}
	return summary
}
