package app

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"commander/internal/bulk"
	"commander/internal/domain"
	"commander/internal/hydrate"
	"commander/internal/inventory"
	"commander/internal/jamf"
	"commander/internal/logging"
	"commander/internal/matching"
	"commander/internal/selection"
	"go.uber.org/zap"
)

var (
	// ErrNothingSelected 表示批量操作没有可处理的条目。
	ErrNothingSelected = errors.New("no items selected")
	// ErrBusy 表示已有批量操作在运行。
	ErrBusy = errors.New("another bulk operation is running")
)

// Service 负责装配各个 Flow 并提供统一入口，持有一次会话内的匹配、视图与选择状态。
type Service struct {
	cfg      Config
	client   jamf.Client
	store    *inventory.Store
	matcher  *matching.Service
	hydrator *hydrate.Hydrator
	deployer *bulk.Deployer
	mutator  *bulk.Mutator
	logger   *zap.Logger

	mu        sync.Mutex
	selection *selection.Set
	filter    matching.Filter

	bulkRunning atomic.Bool
}

// NewService 根据配置构建 Service。
func NewService(cfg Config, client jamf.Client, store *inventory.Store, logger *zap.Logger) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("必须提供 jamf client")
	}
	if store == nil {
		return nil, fmt.Errorf("必须提供 inventory store")
	}
	logger = logging.OrNop(logger)
	return &Service{
		cfg:       cfg,
		client:    client,
		store:     store,
		matcher:   matching.NewService(logger.Named("matching")),
		hydrator:  hydrate.New(cfg.Hydrate.Concurrency, logger.Named("hydrate")),
		deployer:  bulk.NewDeployer(client, cfg.Bulk.DeployDelay(), logger.Named("deploy")),
		mutator:   bulk.NewMutator(client, cfg.Bulk.MutateDelay(), logger.Named("mutate")),
		logger:    logger,
		selection: selection.New(domain.ViewMatched),
	}, nil
}

// Close 释放资源。
func (s *Service) Close() error {
	_ = s.logger.Sync()
	return nil
}

// Matcher 返回匹配服务。
func (s *Service) Matcher() *matching.Service {
	return s.matcher
}

// WithSleep 替换批量操作的等待函数，供测试与演练使用。
func (s *Service) WithSleep(sleep bulk.SleepFunc) *Service {
	s.deployer.WithSleep(sleep)
	s.mutator.WithSleep(sleep)
	return s
}

func (s *Service) beginBulk() error {
	if !s.bulkRunning.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

func (s *Service) endBulk() {
	s.bulkRunning.Store(false)
}

// resetSelection 在输入重新加载或重新匹配后清空选择。
func (s *Service) resetSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Reset()
}
