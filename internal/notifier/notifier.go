package notifier

import (
	"fmt"

	"github.com/notacoder13/nc-lottery-backend/internal/game"
)

// Notifier posts announcements for newly listed games.
type Notifier interface {
	// Notify posts one announcement per game.
	Notify(games []game.Game) error
}

// formatPost renders a game announcement. Posts stay within the 280
// character limit.
func formatPost(g game.Game) string {
	post := fmt.Sprintf("New lottery game: %s\n\n", g.Name)
	if g.Price > 0 {
		post += fmt.Sprintf("Ticket: $%.0f\n", g.Price)
	}
	if g.TopPrize > 0 {
		post += fmt.Sprintf("Top prize: $%.0f\n", g.TopPrize)
	}
	if g.OverallOdds != "" {
		post += fmt.Sprintf("Overall odds: %s\n", g.OverallOdds)
	}
	if g.ExpectedValue > 0 && g.ExpectedValue != game.DefaultExpectedValue {
		post += fmt.Sprintf("Estimated return per dollar: %.2f\n", g.ExpectedValue)
	}

	if len(post) > 280 {
		post = post[:277] + "..."
	}
	return post
}
