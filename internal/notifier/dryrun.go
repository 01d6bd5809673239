package notifier

import (
	"go.uber.org/zap"

	"github.com/notacoder13/nc-lottery-backend/internal/game"
)

// DryRunNotifier logs what would be posted without posting anything.
type DryRunNotifier struct {
	logger *zap.Logger
}

// NewDryRunNotifier creates a dry-run notifier.
func NewDryRunNotifier(logger *zap.Logger) *DryRunNotifier {
	return &DryRunNotifier{logger: logger}
}

// Notify logs each announcement at info level.
func (n *DryRunNotifier) Notify(games []game.Game) error {
	for _, g := range games {
		n.logger.Info("dry-run announcement",
			zap.String("game", g.Name),
			zap.String("post", formatPost(g)),
		)
	}
	return nil
}
