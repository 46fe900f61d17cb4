package logging

import "go.uber.org/zap"

// OrNop 在未注入 logger 时返回空实现，避免各处判空。
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
