package retriever

import "context"

const DefaultLimit = 3

type RetrieveOption func(*RetrieveOptions)

type RetrieveOptions struct {
	Limit   int
	Context context.Context
}

func WithLimit(limit int) RetrieveOption {
	return func(o *RetrieveOptions) {
		o.Limit = limit
	}
}

func NewRetrieveOptions(opts ...RetrieveOption) RetrieveOptions {
	options := RetrieveOptions{
		Limit:   DefaultLimit,
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Limit < 1 {
		options.Limit = DefaultLimit
	}
	return options
}
