package main

import (
	"bytes"
	"context"

	"github.com/vango-dev/mkdom/internal/errors"
	"github.com/vango-dev/mkdom/pkg/htmlhost"
	"github.com/vango-dev/mkdom/pkg/store"
)

func (o *options) s3Config() store.S3Config {
	return store.S3Config{
		Region:       o.cfg.Storage.S3.Region,
		Endpoint:     o.cfg.Storage.S3.Endpoint,
		UsePathStyle: o.cfg.Storage.S3.PathStyle,
	}
}

func (o *options) hostOptions() []htmlhost.Option {
	opts := []htmlhost.Option{htmlhost.WithLogger(o.logger)}
	if o.cfg.Host.ForceClassAttr {
		opts = append(opts, htmlhost.WithoutClassList())
	}
	return opts
}

// loadDocument reads and parses the document at loc.
func (o *options) loadDocument(ctx context.Context, loc string) (*htmlhost.Document, error) {
	if loc == "" {
		return nil, errors.New("E140").WithSuggestion("Pass --in with a file path or s3://bucket/key")
	}
	st, key, err := store.Open(ctx, o.cfg.StoragePath(loc), o.s3Config())
	if err != nil {
		return nil, err
	}
	data, err := st.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	return htmlhost.Parse(bytes.NewReader(data), o.hostOptions()...)
}

// saveDocument renders doc to loc.
func (o *options) saveDocument(ctx context.Context, loc string, doc *htmlhost.Document) error {
	st, key, err := store.Open(ctx, o.cfg.StoragePath(loc), o.s3Config())
	if err != nil {
		return err
	}
	return st.Save(ctx, key, []byte(doc.String()))
}
