package content

import (
	"context"

	"github.com/dmitrymomot/contentkit/pkg/async"
	"github.com/dmitrymomot/contentkit/pkg/datauri"
	"github.com/dmitrymomot/contentkit/pkg/media"
)

// HostImages uploads every distinct embedded data URI to s under folder and replaces
// its occurrences with the public URL. References that fail to upload stay inline.
// Objects are named after their content hash, so repeated uploads are idempotent.
func HostImages(ctx context.Context, s media.Storage, content, folder string) (string, Report) {
	if s == nil {
		return content, Report{}
	}
	refs := datauri.Extract(content)
	if len(refs) == 0 {
		return content, Report{}
	}

	outcomes := async.Map(ctx, refs, func(ctx context.Context, ref string) (*media.Asset, error) {
		return media.UploadDataURI(ctx, s, ref, folder, "")
	})

	report := Report{Results: make([]Result, len(refs))}
	for i, ref := range refs {
		res := Result{Ref: ref, Replacement: ref, Err: outcomes[i].Err}
		if res.Err == nil {
			res.Replacement = outcomes[i].Value.URL
		}
		report.Results[i] = res
	}

	return substitute(content, report.Results), report
}
