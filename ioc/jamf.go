package ioc

import (
	"fmt"
	"time"

	"commander/internal/app"
	"commander/internal/jamf"
	"go.uber.org/zap"
)

// InitJamfClient 构建后端客户端；未配置连接信息时退回内存实现，便于本地演练。
func InitJamfClient(cfg app.Config, logger *zap.Logger) (jamf.Client, error) {
	if !cfg.Jamf.Configured() {
		logger.Warn("jamf connection not configured, using in-memory client")
		return &jamf.StaticClient{}, nil
	}
	timeout := time.Duration(cfg.Jamf.TimeoutSeconds) * time.Second
	ts, err := jamf.NewClientCredentialsTokenSource(jamf.ClientCredentialsConfig{
		Endpoint:     cfg.Jamf.TokenURL(),
		ClientID:     cfg.Jamf.ClientID,
		ClientSecret: cfg.Jamf.ClientSecret,
		Timeout:      timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("构建 token source 失败: %w", err)
	}
	return jamf.NewHTTPClient(jamf.HTTPConfig{
		BaseURL:      cfg.Jamf.BaseURL,
		TokenSource:  ts,
		Timeout:      timeout,
		ReadAttempts: cfg.Jamf.ReadAttempts,
		Logger:       logger.Named("jamf"),
	})
}
