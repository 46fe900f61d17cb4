package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source 标识一份可导入的文件。
type Source string

const (
	SourceLabels      Source = "labels"
	SourceMacApps     Source = "mac"
	SourceWindowsApps Source = "windows"
)

const (
	LabelsFileName      = "Commander_Saved_Labels.txt"
	MacAppsFileName     = "Commander_Saved_MacApps.csv"
	WindowsAppsFileName = "Commander_Saved_PCApps.csv"
)

// Sources 按加载顺序列出全部来源。
var Sources = []Source{SourceLabels, SourceMacApps, SourceWindowsApps}

// ParseSource 解析来源名称。
func ParseSource(raw string) (Source, error) {
	switch Source(strings.ToLower(strings.TrimSpace(raw))) {
	case SourceLabels:
		return SourceLabels, nil
	case SourceMacApps, "macos":
		return SourceMacApps, nil
	case SourceWindowsApps, "pc":
		return SourceWindowsApps, nil
	}
	return "", fmt.Errorf("未知的导入来源: %q", raw)
}

// FileName 返回来源对应的固定文件名。
func (s Source) FileName() string {
	switch s {
	case SourceLabels:
		return LabelsFileName
	case SourceMacApps:
		return MacAppsFileName
	case SourceWindowsApps:
		return WindowsAppsFileName
	}
	return ""
}

// Rank 返回来源的匹配优先级，macOS 导出表先于 Windows。
func (s Source) Rank() int {
	if s == SourceWindowsApps {
		return 1
	}
	return 0
}

// Apply 解析 content 并替换 in 中对应来源的数据。
func (s Source) Apply(in *Inputs, content string) {
	switch s {
	case SourceLabels:
		in.Catalogue = ParseLabels(content)
	case SourceMacApps:
		in.MacApps = ParseApplications(content, s.Rank())
	case SourceWindowsApps:
		in.WindowsApps = ParseApplications(content, s.Rank())
	}
}

// Store 把导入文件原样保存到用户目录，下次启动时自动读回。
type Store struct {
	dir string
}

// NewStore 创建存储目录并返回 Store。
func NewStore(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("存储目录不能为空")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("创建存储目录失败: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir 返回存储目录。
func (s *Store) Dir() string {
	return s.dir
}

// Save 原样写入某个来源的文件内容，先写临时文件再改名。
func (s *Store) Save(source Source, content string) error {
	name := source.FileName()
	if name == "" {
		return fmt.Errorf("未知的导入来源: %q", source)
	}
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("写入 %s 失败: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("写入 %s 失败: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("保存 %s 失败: %w", name, err)
	}
	return nil
}

// Load 读回已保存的文件，缺失的来源直接跳过。present 列出实际读到的来源。
func (s *Store) Load() (in Inputs, present []Source, err error) {
	for _, source := range Sources {
		data, readErr := os.ReadFile(filepath.Join(s.dir, source.FileName()))
		if errors.Is(readErr, os.ErrNotExist) {
			continue
		}
		if readErr != nil {
			return Inputs{}, nil, fmt.Errorf("读取 %s 失败: %w", source.FileName(), readErr)
		}
		source.Apply(&in, string(data))
		present = append(present, source)
	}
	return in, present, nil
}
