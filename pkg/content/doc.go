// Package content rewrites rich-text (HTML) content: it normalizes embedded base64 images
// and manages image sources.
//
// Normalizer finds every distinct data URI in the content, converts all of them
// concurrently, and substitutes each result for every occurrence of its reference:
//
//	n := content.NewNormalizer(svc, content.WithLogger(log))
//	html, report := n.ReplaceBase64Images(ctx, html)
//	if report.Failed() > 0 {
//		log.Warn("some images were not normalized", logger.Error(report.Err()))
//	}
//
// A failed conversion never aborts the others. By default its reference is replaced
// with the literal "null"; WithFailurePolicy(FailureKeepOriginal) leaves it in place.
//
// HostImages moves embedded images out of the content: each distinct data URI is uploaded
// to a media.Storage and replaced with its public URL.
//
// ReplacePlaceholders, AddBaseURL and RemoveBaseURL are plain string rewrites with no I/O.
package content
