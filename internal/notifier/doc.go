// Package notifier announces newly listed lottery games. The Twitter
// implementation posts one update per game; the dry-run implementation
// logs what would have been posted, for local runs and CI.
package notifier
