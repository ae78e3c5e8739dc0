package postgres

import (
	"database/sql"
	"fmt"
)

// visibleToViewer is the shared visibility predicate applied by every read
// query that returns posts. %[1]s is the placeholder number of the viewer
// parameter. A post is visible when it is not soft-deleted and is public,
// authored by the viewer, or friends-only with a mutual follow between the
// viewer and the author. Expiry is NOT part of this predicate; callers add
// their own expiry filter where the operation requires one.
const visibleToViewer = `
		p.soft_deleted = FALSE
		AND (
			p.visibility = 'public'
			OR p.author_id = %[1]s
			OR (
				p.visibility = 'friends'
				AND EXISTS (
					SELECT 1 FROM follows f1
					WHERE f1.follower_id = %[1]s AND f1.followee_id = p.author_id
				)
				AND EXISTS (
					SELECT 1 FROM follows f2
					WHERE f2.follower_id = p.author_id AND f2.followee_id = %[1]s
				)
			)
		)`

// visibilityFilter renders the predicate with the viewer bound to the given
// parameter number.
func visibilityFilter(viewerParam int) string {
	return fmt.Sprintf(visibleToViewer, fmt.Sprintf("$%d", viewerParam))
}

// nullStringPtr converts sql.NullString to *string
func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
