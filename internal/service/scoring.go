package service

import (
	"fmt"
	"math"
	"mindcare_backend/internal/model"
	"mindcare_backend/internal/util"
)

const (
	likertMin = 1
	likertMax = 5

	greenThreshold  = 80
	yellowThreshold = 60
)

// SurveyScore 每日问卷得分
type SurveyScore struct {
	TotalScore int        `json:"totalScore"`
	MaxScore   int        `json:"maxScore"`
	Percentage int        `json:"percentage"`
	Zone       model.Zone `json:"zone"`
}

// NormalizeLikert 校验 1..5 的原始作答，反向题按 6-r 存储
func NormalizeLikert(raw int, reverse bool) (int, error) {
	if raw < likertMin || raw > likertMax {
		return 0, fmt.Errorf("%w: answer %d outside %d..%d", util.ErrInvalidArgument, raw, likertMin, likertMax)
	}
	if reverse {
		return likertMax + likertMin - raw, nil
	}
	return raw, nil
}

// ScoreDailySurvey 对已归一化的 1..5 分值求和并分区。空作答视为 0% 红区
func ScoreDailySurvey(answers []int) SurveyScore {
	total := 0
	for _, v := range answers {
		total += v
	}
	maxScore := likertMax * len(answers)

	percentage := 0
	if maxScore > 0 {
		percentage = int(math.Round(100 * float64(total) / float64(maxScore)))
	}

	return SurveyScore{
		TotalScore: total,
		MaxScore:   maxScore,
		Percentage: percentage,
		Zone:       ZoneFor(percentage),
	}
}

// ZoneFor 阈值为含下界：>=80 绿区，60..79 黄区，<60 红区
func ZoneFor(percentage int) model.Zone {
	switch {
	case percentage >= greenThreshold:
		return model.ZoneGreen
	case percentage >= yellowThreshold:
		return model.ZoneYellow
	default:
		return model.ZoneRed
	}
}
