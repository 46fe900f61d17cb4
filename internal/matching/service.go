package matching

import (
	"context"
	"errors"
	"sync"
	"time"

	"commander/internal/inventory"
	"commander/internal/logging"
	"commander/internal/metrics"
	"commander/pkg/util"
	"go.uber.org/zap"
)

// ErrInputsMissing 表示缺少目录或应用列表，匹配无法启动。
var ErrInputsMissing = errors.New("label catalogue and at least one application list are required")

// Service 持有匹配输入与最近一次发布的结果。
// 输入与结果都是整体替换，读者拿到的切片不会被原地修改。
type Service struct {
	logger *zap.Logger

	mu          sync.RWMutex
	inputs      inventory.Inputs
	generation  uint64
	matches     []MatchResult
	fingerprint string
}

// NewService 构建匹配服务。
func NewService(logger *zap.Logger) *Service {
	return &Service{logger: logging.OrNop(logger)}
}

// SetInputs 整体替换输入，并丢弃旧结果。
func (s *Service) SetInputs(in inventory.Inputs) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs = in
	s.generation++
	s.matches = nil
	s.fingerprint = ""
	metrics.MatchResults.Set(0)
}

// Inputs 返回当前输入。
func (s *Service) Inputs() inventory.Inputs {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inputs
}

// Catalogue 返回当前目录。
func (s *Service) Catalogue() inventory.Catalogue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inputs.Catalogue
}

// CanRun 检查运行匹配的前置条件。
func (s *Service) CanRun() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.inputs.Ready() {
		return ErrInputsMissing
	}
	return nil
}

// Matches 返回最近一次发布的结果副本。
func (s *Service) Matches() []MatchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]MatchResult(nil), s.matches...)
}

// Fingerprint 返回当前结果对应的输入指纹，尚未运行时为空。
func (s *Service) Fingerprint() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fingerprint
}

// Run 在后台 goroutine 中完成整轮匹配，结束后一次性发布结果。
// ctx 取消时放弃本轮结果；运行期间输入被替换时同样不发布。
func (s *Service) Run(ctx context.Context) ([]MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	in := s.inputs
	gen := s.generation
	s.mu.RUnlock()

	start := time.Now()
	done := make(chan []MatchResult, 1)
	go func() {
		done <- Match(in.Applications(), in.Catalogue)
	}()

	var results []MatchResult
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case results = <-done:
	}
	elapsed := time.Since(start)
	metrics.MatchDuration.Observe(elapsed.Seconds())

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.logger.Info("inputs replaced during matching, result discarded")
		return append([]MatchResult(nil), s.matches...), nil
	}
	s.matches = results
	s.fingerprint = fingerprint(in)
	metrics.MatchResults.Set(float64(len(results)))
	s.logger.Info("matching completed",
		zap.Int("labels", len(in.Catalogue)),
		zap.Int("mac_apps", len(in.MacApps)),
		zap.Int("windows_apps", len(in.WindowsApps)),
		zap.Int("matches", len(results)),
		zap.Duration("duration", elapsed))
	return append([]MatchResult(nil), results...), nil
}

// Stale 判断 in 与当前已发布结果的输入是否不同。
func (s *Service) Stale(in inventory.Inputs) bool {
	return s.Fingerprint() != fingerprint(in)
}

func fingerprint(in inventory.Inputs) string {
	return util.HashStrings(in.Catalogue, appKeys(in.MacApps), appKeys(in.WindowsApps))
}

func appKeys(apps []inventory.Application) []string {
	keys := make([]string, 0, len(apps))
	for _, app := range apps {
		keys = append(keys, app.Name+"\x1f"+string(app.Platform))
	}
	return keys
}
