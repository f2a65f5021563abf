package crud

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"wtfSpaces/domain"
	"wtfSpaces/errs"
)

// MaxPageSize caps how many edges a single listing request may take, so a
// caller cannot force an unbounded read.
const MaxPageSize = 100

// normalizePage validates a page request and flattens it into a take and
// an optional cursor. The empty cursor means "start from the beginning".
func normalizePage(req domain.PageRequest) (take int, cursor string, err error) {
	switch r := req.(type) {
	case domain.FirstPage:
		take = r.Take
	case domain.NextPage:
		if r.Cursor == "" {
			return 0, "", errs.Errorf(errs.EINVALID, "A continuation requires a cursor.")
		}
		take, cursor = r.Take, r.Cursor
	case nil:
		return 0, "", errs.Errorf(errs.EINVALID, "A page request is required.")
	default:
		return 0, "", errs.Errorf(errs.EINVALID, "Unknown page request type.")
	}
	if take <= 0 {
		return 0, "", errs.Errorf(errs.EINVALID, "Take must be a positive number.")
	}
	if take > MaxPageSize {
		take = MaxPageSize
	}
	return take, cursor, nil
}

// keysetCompare returns the row comparison operator that selects rows
// strictly after the cursor row in the given sort order.
func keysetCompare(order domain.SortOrder) (string, error) {
	switch order {
	case domain.Asc:
		return ">", nil
	case domain.Desc:
		return "<", nil
	default:
		return "", errs.Errorf(errs.EINVALID, "Sort order must be %q or %q.", domain.Asc, domain.Desc)
	}
}

// buildPage assembles the final page from the fetched edges. HasNextPage
// is true exactly when the page came back full; that can be optimistic
// (the next page may be empty) but a false value is always final.
func buildPage(edges []domain.Edge, take int) *domain.Page {
	page := &domain.Page{
		Edges: edges,
		PageInfo: domain.PageInfo{
			HasNextPage: len(edges) == take,
		},
	}
	if len(edges) > 0 {
		page.PageInfo.EndCursor = edges[len(edges)-1].Cursor
	}
	return page
}

// invalidCursor is the failure for a cursor that does not resolve to a row
// under the current filter. It is distinct from an empty page: the caller
// should restart from the first page.
func invalidCursor() error {
	return errs.Errorf(errs.EINVALID, "The cursor does not match any edge, restart from the first page.")
}

// storeErr maps a cancelled, timed-out or unreachable store call to
// EUNAVAILABLE so the transport can signal "retryable" to the client.
// Everything else (constraint violations, query errors) passes through and
// surfaces as an internal error.
func storeErr(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return errs.Errorf(errs.EUNAVAILABLE, "The data store did not respond.")
	}
	// Connectivity failures: a refused or dropped connection from the pgx
	// driver, any network-level error, or a connection the pool gave up on.
	var connErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connErr) || errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) {
		return errs.Errorf(errs.EUNAVAILABLE, "The data store is unreachable.")
	}
	return err
}
