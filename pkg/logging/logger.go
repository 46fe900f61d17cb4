package logging

import "go.uber.org/zap"

// NewZapLogger 返回控制台输出的 zap logger，level 为空时使用 info。
func NewZapLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Encoding = "console"
	lvl := zap.NewAtomicLevelAt(zap.InfoLevel)
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, err
		}
	}
	cfg.Level = lvl
	return cfg.Build()
}
