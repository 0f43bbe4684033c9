// Package dataprocessing recovers already-computed analysis values from the
// notebook's console renderings and assembles them into the aggregated
// metrics record published for the dashboard.
//
// # Architecture
//
// The package is organized into two main components:
//
// 1. Parsers: stateless text-to-value extractors (scalars, tables, lists)
// 2. Builder: assembles parsed fields into one domain.Metrics record
//
// # Parsing Contract
//
// Every parser is total: it never returns an error. A pattern that does not
// match yields a nil field, an empty list, or a skipped line. The upstream
// text is the incidental console rendering of an external analysis tool and
// is not contractually stable, so the permissive no-match-means-null policy
// must not be tightened.
//
// Numbers may carry thousands separators ("1,460"); separators are stripped
// before parsing, so "1,234.5" and "1234.5" parse to the same value.
//
// # Usage
//
//	doc, err := notebook.Load(paths.NotebookFile)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	builder := dataprocessing.NewBuilder(logger)
//	metrics := builder.Build(ctx, doc, "House-Price.ipynb", chartFiles, profileReport)
//
// # Testing
//
// Use table-driven tests when adding new parsers.
package dataprocessing
