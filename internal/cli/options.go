package cli

import "time"

type Options struct {
	Command    string
	APIBaseURL string
	APIToken   string
	Username   string
	JSON       bool
	Debug      bool
	LogFile    string
	Timeout    time.Duration
}
