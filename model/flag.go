package model

import "time"

// QueryFlags holds the options shared by the query and print-html commands.
type QueryFlags struct {
	Services    []string
	Regions     []string
	Operations  []string
	Parallel    int
	Directory   string
	Verbose     int
	Profile     string
	Timeout     time.Duration
	MaxAttempts int
	Rate        float64
	Output      string
	NoProgress  bool
	Store       bool
	DBPath      string
	ConfigPath  string

	// print-html only
	Report string
	NoOpen bool
}

// ShowFlags holds the options of the show command.
type ShowFlags struct {
	Files   []string
	Verbose int
	Query   string
}

// CacheFlags holds the options of the recreate-caches command.
type CacheFlags struct {
	UpdatePackagedValues bool
	PackagedPath         string
	Parallel             int
	Verbose              int
	ConfigPath           string
}

// IntrospectFlags holds the options of the introspect command.
type IntrospectFlags struct {
	Detail     string
	Services   []string
	Verbose    int
	ConfigPath string
}

// HistoryFlags holds the options of the history command.
type HistoryFlags struct {
	Action     string
	Args       []string
	DBPath     string
	AccountID  string
	Limit      int
	Days       int
	Status     string
	Output     string
	ExportCSV  string
	ConfigPath string
}
