package storage

// Record is a finished activity. It is created once at finish time and never mutated.
type Record struct {
	Title      string `json:"title"`
	Seconds    int64  `json:"seconds"`
	FinishedAt string `json:"finished_at"` // local display timestamp
}
