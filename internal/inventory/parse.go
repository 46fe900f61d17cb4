package inventory

import "strings"

// ParseLabels 按行拆分 label 文件，去掉首尾空白并丢弃空行。
func ParseLabels(content string) Catalogue {
	lines := splitLines(content)
	labels := make(Catalogue, 0, len(lines))
	for _, line := range lines {
		label := strings.TrimSpace(line)
		if label == "" {
			continue
		}
		labels = append(labels, label)
	}
	return labels
}

// ParseApplications 解析逗号分隔的应用导出表。
// 第一行固定视为表头；列数不足两列或名称为空的行直接丢弃。
func ParseApplications(content string, rank int) []Application {
	var apps []Application
	for idx, row := range splitLines(content) {
		if idx == 0 {
			continue
		}
		columns := strings.Split(row, ",")
		if len(columns) < 2 {
			continue
		}
		name := cleanCell(columns[0])
		if name == "" {
			continue
		}
		apps = append(apps, Application{
			Name:      name,
			Platform:  Platform(cleanCell(columns[1])),
			SourceRow: row,
			Rank:      rank,
		})
	}
	return apps
}

func cleanCell(cell string) string {
	return strings.Trim(strings.ReplaceAll(cell, `"`, ""), " \t")
}

func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
