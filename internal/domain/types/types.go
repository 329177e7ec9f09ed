// Package types contains common types used across the application
package types

// Standing is one row of a ranked leaderboard.
type Standing struct {
	Rank   int     `json:"rank"`
	Name   string  `json:"name"`
	Score  float64 `json:"plp"`
	KLP    float64 `json:"klp"`
	Clears int     `json:"clears"`
}

// Stats summarizes the current board.
type Stats struct {
	Entries        int `json:"entries"`
	DroppedEntries int `json:"dropped_entries"`
	Players        int `json:"players"`
	Participations int `json:"participations"`
	Skipped        int `json:"skipped"`
	Duplicates     int `json:"duplicates"`
	// EntryKLP is the point value of every registered entry. CreditedKLP is
	// the sum of all players' KLP, so victories count once per victor.
	EntryKLP    float64 `json:"entry_klp"`
	CreditedKLP float64 `json:"credited_klp"`
	TopScore    float64 `json:"top_plp"`
	BuiltAt     string  `json:"built_at"`
}
