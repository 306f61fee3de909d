// Package source fetches daily price tables from remote providers.
//
// A Source returns a table indexed by Date with the numeric columns Open,
// High, Low, Close, Adj Close and Volume. Any failure, including an invalid
// symbol, an empty date range or an open circuit breaker, yields an empty
// table and an error of kind RemoteFetchFailed wrapping the reason. Fetches
// are never retried automatically.
//
//	y := source.NewYahoo(source.YahooOptions{})
//	t, err := y.Fetch(ctx, source.Request{Symbol: "AAPL", Start: start, End: end})
package source
