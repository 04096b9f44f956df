/*
Package fingerprint derives the stable identity used for cross-run
deduplication of notes.
*/
package fingerprint

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/xcop32221/xhs-auto-search/internal/types"
)

// For computes the content fingerprint of a note from its platform ID and
// title. Mutable engagement fields (likes, comments) deliberately do not
// participate, so a count change on an already-seen note never re-triggers
// notification. Empty fields hash as empty strings; this never fails.
func For(post types.PostRecord) string {
	sum := md5.Sum([]byte(post.NoteID + post.Title))
	return hex.EncodeToString(sum[:])
}
