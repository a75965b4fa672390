// Package media uploads content images to public storage and removes them again by URL.
//
// Two Storage implementations are provided: S3Storage for Amazon S3 and S3-compatible
// services, and LocalStorage for a directory served by the application itself.
//
//	var cfg media.S3Config
//	config.MustLoad(&cfg)
//
//	store, err := media.NewS3Storage(ctx, cfg)
//	if err != nil {
//		return err
//	}
//
//	asset, err := media.UploadDataURI(ctx, store, webpURI, "posts", "cover")
//	// asset.URL == "https://bucket.s3.us-east-1.amazonaws.com/posts/cover.webp"
//
//	err = store.Remove(ctx, asset.URL)
//
// Object keys are "<folder>/<slug of name>.<ext>"; the extension comes from the name or,
// when it has none, from the sniffed MIME type. Remove is a no-op for empty URLs and for
// URLs outside the storage's base URL. S3 errors are mapped onto the sentinels in errors.go.
package media
