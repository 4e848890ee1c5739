package notify

import (
	"go.uber.org/zap"
)

// LogNotifier writes notifications to a zap logger
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a LogNotifier. A nil logger uses the zap global logger.
func NewLogNotifier(l *zap.Logger) *LogNotifier {
	if l == nil {
		l = zap.L()
	}
	return &LogNotifier{logger: l.Named("notify")}
}

// Info implements domain.Notifier
func (n *LogNotifier) Info(title, detail string) {
	n.logger.Info(title, zap.String("detail", detail))
}

// Warning implements domain.Notifier
func (n *LogNotifier) Warning(title, detail string) {
	n.logger.Warn(title, zap.String("detail", detail))
}
