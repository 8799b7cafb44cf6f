// Package sanitize strips markup from user supplied text before it reaches
// storage. The API serves JSON only, but stored text ends up in whatever
// client renders it, so HTML is removed at the write path.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
