package provider

import "context"

// FindPageCap bounds the number of pages a catalog search requests.
const FindPageCap = 2

// PageFunc fetches page number page, counting from 1, and reports whether another page follows.
type PageFunc[T any] func(ctx context.Context, page int) (items []T, more bool, err error)

// Paginate requests pages until the provider reports none left or limit pages were fetched.
// A limit of 0 means no limit.
func Paginate[T any](ctx context.Context, limit int, fetch PageFunc[T]) ([]T, error) {
	var all []T

	for page := 1; limit == 0 || page <= limit; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		items, more, err := fetch(ctx, page)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)
		if !more {
			break
		}
	}

	return all, nil
}
