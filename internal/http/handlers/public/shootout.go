package public

import (
	"github.com/tripcart/internal/http/response"
	"github.com/tripcart/internal/i18n"
	"github.com/tripcart/internal/shootout"

	"github.com/gin-gonic/gin"
)

// ShotRequest 射门请求；taken / goals 为本局已有进度
type ShotRequest struct {
	Zone       string `json:"zone" binding:"required"`
	Power      int    `json:"power"`
	Difficulty string `json:"difficulty"`
	Taken      int    `json:"taken"`
	Goals      int    `json:"goals"`
}

// ShotResponse 射门响应
type ShotResponse struct {
	Result     shootout.Result     `json:"result"`
	Difficulty shootout.Difficulty `json:"difficulty"`
	Taken      int                 `json:"taken"`
	Goals      int                 `json:"goals"`
	Remaining  int                 `json:"remaining"`
	Finished   bool                `json:"finished"`
	Summary    *ShotSummary        `json:"summary,omitempty"`
}

// ShotSummary 本局总结
type ShotSummary struct {
	shootout.Summary
	TitleText string `json:"title_text"`
}

// TakeShot 判定一次射门
func (h *Handler) TakeShot(c *gin.Context) {
	var req ShotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	difficulty, err := shootout.ParseDifficulty(req.Difficulty)
	if err != nil {
		respondShootoutError(c, err)
		return
	}
	zone, err := shootout.ParseZone(req.Zone)
	if err != nil {
		respondShootoutError(c, err)
		return
	}
	game, err := shootout.Resume(difficulty, req.Taken, req.Goals)
	if err != nil {
		respondShootoutError(c, err)
		return
	}
	result, err := game.Take(shootout.Shot{Zone: zone, Power: req.Power}, h.random)
	if err != nil {
		respondShootoutError(c, err)
		return
	}

	resp := ShotResponse{
		Result:     result,
		Difficulty: difficulty,
		Taken:      game.Taken,
		Goals:      game.Goals,
		Remaining:  game.TotalShots - game.Taken,
		Finished:   game.Finished(),
	}
	if resp.Finished {
		summary := game.Summary()
		resp.Summary = &ShotSummary{
			Summary:   summary,
			TitleText: i18n.T(i18n.ResolveLocale(c), summary.Title),
		}
	}
	response.Success(c, resp)
}
