// Package scrape provides the source adapters of the aggregation
// pipeline: the instant-ticket catalog, the prize-remaining ledger, and
// the multi-state draw games.
//
// Each adapter fetches one upstream page, extracts records with a
// prioritized set of CSS selectors, and falls back to a generic
// table-row strategy when the primary selectors yield nothing. Adapters
// never return an error past their boundary: any transport or
// extraction failure is logged, counted, and converted into an empty
// result so one upstream outage cannot block the other sources.
package scrape
