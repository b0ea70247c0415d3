// Package store loads and saves HTML documents by location.
//
// A location is either a local path or an s3://bucket/key URL:
//
//	st, key, err := store.Open(ctx, "s3://pages/site/index.html", store.S3Config{Region: "eu-west-1"})
//	data, err := st.Load(ctx, key)
//
// S3 clients resolve credentials and region through the default AWS
// configuration chain.
//
// DiskStore writes atomically through a temp file in the target directory.
// S3Store accepts any client with GetObject and PutObject, which is what
// tests substitute.
package store
