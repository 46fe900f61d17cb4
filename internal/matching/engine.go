package matching

import (
	"sort"
	"strings"
	"unicode/utf8"

	"commander/internal/domain"
	"commander/internal/inventory"
)

// MatchResult 表示一个应用与一个目录 label 的匹配。ID 由 label 派生，重新计算后保持不变。
type MatchResult struct {
	ID           string                `json:"id"`
	Application  inventory.Application `json:"application"`
	MatchedLabel string                `json:"matched_label"`
	Selected     bool                  `json:"selected"`
}

// Match 对应用逐个匹配目录 label。
//
// 应用先按 Rank 稳定排序，Rank 小的先占用 label，后来者命中已占用的 label 时直接丢弃。
// 同一应用精确匹配优先；否则在名称包含的 label 中取最长的，长度相同时取目录中靠前的那个，
// 所以结果依赖目录文件的行顺序。结果按平台、名称升序排列。
func Match(apps []inventory.Application, catalogue inventory.Catalogue) []MatchResult {
	if len(apps) == 0 || len(catalogue) == 0 {
		return nil
	}
	ordered := append([]inventory.Application(nil), apps...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Rank < ordered[j].Rank
	})

	claimed := make(map[string]struct{})
	var results []MatchResult
	for _, app := range ordered {
		label, ok := findLabel(Normalize(app.Name), catalogue)
		if !ok {
			continue
		}
		if _, taken := claimed[label]; taken {
			continue
		}
		claimed[label] = struct{}{}
		results = append(results, MatchResult{
			ID:           domain.MakeKey(domain.PrefixMatch, label),
			Application:  app,
			MatchedLabel: label,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].Application, results[j].Application
		if a.Platform == b.Platform {
			return a.Name < b.Name
		}
		return a.Platform < b.Platform
	})
	return results
}

func findLabel(key string, catalogue inventory.Catalogue) (string, bool) {
	if key == "" {
		return "", false
	}
	for _, label := range catalogue {
		if label == key {
			return label, true
		}
	}
	best, bestLen := "", 0
	for _, label := range catalogue {
		if label == "" || !strings.Contains(key, label) {
			continue
		}
		if n := utf8.RuneCountInString(label); n > bestLen {
			best, bestLen = label, n
		}
	}
	return best, bestLen > 0
}
