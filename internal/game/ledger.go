package game

// LedgerEntry accumulates the remaining-prize tiers published for one
// instant game number. Entries are transient: they only exist between
// the ledger scrape and the merge.
type LedgerEntry struct {
	GameNumber string
	Name       string
	Tiers      []PrizeTier
}

// Ledger maps instant game numbers to their remaining-prize entries.
type Ledger map[string]*LedgerEntry

// Add appends a tier to the entry for gameNumber, creating the entry on
// first sight. Multiple ledger rows for the same game number accumulate
// into one entry.
func (l Ledger) Add(gameNumber, name string, tier PrizeTier) {
	entry, ok := l[gameNumber]
	if !ok {
		entry = &LedgerEntry{GameNumber: gameNumber, Name: name}
		l[gameNumber] = entry
	}
	if entry.Name == "" {
		entry.Name = name
	}
	entry.Tiers = append(entry.Tiers, tier)
}
