package service

import (
	"fmt"
	"mindcare_backend/internal/model"
	"mindcare_backend/internal/util"
	"sort"
	"strconv"
)

// DASS-21 题号到分量表的固定映射
var (
	depressionItems = []int{3, 5, 10, 13, 16, 17, 21}
	anxietyItems    = []int{2, 4, 7, 9, 15, 19, 20}
	stressItems     = []int{1, 6, 8, 11, 12, 14, 18}
)

const (
	assessmentItemCount = 21
	assessmentMaxAnswer = 3
)

// 各分量表严重程度下界：mild, moderate, severe, extremely severe
var (
	depressionCutoffs = [4]int{10, 14, 21, 28}
	anxietyCutoffs    = [4]int{8, 10, 15, 20}
	stressCutoffs     = [4]int{15, 19, 26, 34}
)

type AssessmentScore struct {
	DepressionScore    int            `json:"depressionScore"`
	AnxietyScore       int            `json:"anxietyScore"`
	StressScore        int            `json:"stressScore"`
	TotalScore         int            `json:"totalScore"`
	IsComplete         bool           `json:"isComplete"`
	Missing            []string       `json:"missing,omitempty"`
	DepressionSeverity model.Severity `json:"depressionSeverity"`
	AnxietySeverity    model.Severity `json:"anxietySeverity"`
	StressSeverity     model.Severity `json:"stressSeverity"`
}

func assessmentItemID(n int) string {
	return "q" + strconv.Itoa(n)
}

// ScoreInitialAssessment 各分量表得分为对应 7 题之和乘 2。
// 缺失题按 0 计并在 IsComplete/Missing 中标出，未知题号或超出 0..3 的作答返回 ErrInvalidArgument
func ScoreInitialAssessment(answers map[string]int) (AssessmentScore, error) {
	known := make(map[string]bool, assessmentItemCount)
	for i := 1; i <= assessmentItemCount; i++ {
		known[assessmentItemID(i)] = true
	}

	for id, v := range answers {
		if !known[id] {
			return AssessmentScore{}, fmt.Errorf("%w: unknown assessment item %q", util.ErrInvalidArgument, id)
		}
		if v < 0 || v > assessmentMaxAnswer {
			return AssessmentScore{}, fmt.Errorf("%w: item %s answer %d outside 0..%d", util.ErrInvalidArgument, id, v, assessmentMaxAnswer)
		}
	}

	var missing []string
	for i := 1; i <= assessmentItemCount; i++ {
		if _, ok := answers[assessmentItemID(i)]; !ok {
			missing = append(missing, assessmentItemID(i))
		}
	}
	sort.Strings(missing)

	subscale := func(items []int) int {
		sum := 0
		for _, n := range items {
			sum += answers[assessmentItemID(n)]
		}
		return 2 * sum
	}

	score := AssessmentScore{
		DepressionScore: subscale(depressionItems),
		AnxietyScore:    subscale(anxietyItems),
		StressScore:     subscale(stressItems),
		IsComplete:      len(missing) == 0,
		Missing:         missing,
	}
	score.TotalScore = score.DepressionScore + score.AnxietyScore + score.StressScore
	score.DepressionSeverity = severityFor(score.DepressionScore, depressionCutoffs)
	score.AnxietySeverity = severityFor(score.AnxietyScore, anxietyCutoffs)
	score.StressSeverity = severityFor(score.StressScore, stressCutoffs)

	return score, nil
}

func severityFor(score int, cutoffs [4]int) model.Severity {
	switch {
	case score >= cutoffs[3]:
		return model.SeverityExtremelySevere
	case score >= cutoffs[2]:
		return model.SeveritySevere
	case score >= cutoffs[1]:
		return model.SeverityModerate
	case score >= cutoffs[0]:
		return model.SeverityMild
	default:
		return model.SeverityNormal
	}
}
