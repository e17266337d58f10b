package assistant

import "github.com/freshmarket/assistant/retriever"

type Option func(*Options)

type Options struct {
	Limit           int
	MaxHistoryTurns int
}

// WithLimit sets how many products are retrieved to ground each turn.
func WithLimit(limit int) Option {
	return func(o *Options) {
		o.Limit = limit
	}
}

// WithMaxHistoryTurns sets how many prior turns are carried per request.
func WithMaxHistoryTurns(turns int) Option {
	return func(o *Options) {
		o.MaxHistoryTurns = turns
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Limit:           retriever.DefaultLimit,
		MaxHistoryTurns: DefaultMaxHistoryTurns,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Limit < 1 {
		options.Limit = retriever.DefaultLimit
	}
	if options.MaxHistoryTurns < 1 {
		options.MaxHistoryTurns = DefaultMaxHistoryTurns
	}
	return options
}
