// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds connection settings for an S3-compatible bucket.
type S3Config struct {
	Endpoint       string
	Region         string
	Bucket         string
	AccessKey      string
	SecretKey      string
	PublicBaseURL  string
	ForcePathStyle bool
}

// S3Store implements Store against an S3-compatible bucket.
type S3Store struct {
	client        *s3.Client
	bucket        string
	region        string
	endpoint      string
	publicBaseURL string
	pathStyle     bool
}

var _ Store = (*S3Store)(nil)

// NewS3Store creates an S3-backed store. Fails fast when the bucket or
// credentials are missing so a misconfigured deployment is caught at startup
// rather than at the first upload.
func NewS3Store(cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("storage: access key and secret key are required")
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			if cfg.Region != "" {
				o.Region = cfg.Region
			} else {
				o.Region = "us-east-1"
			}

			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}

			if cfg.ForcePathStyle {
				o.UsePathStyle = true
			}

			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKey, cfg.SecretKey, "",
			)
		},
	}

	return &S3Store{
		client:        s3.New(s3.Options{}, opts...),
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		endpoint:      cfg.Endpoint,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		pathStyle:     cfg.ForcePathStyle,
	}, nil
}

// Put writes an object and returns its key and public URL.
func (s *S3Store) Put(ctx context.Context, key string, data []byte, contentType string) (PutResult, error) {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return PutResult{}, fmt.Errorf("storage: empty object key")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return PutResult{}, fmt.Errorf("PutObject %s: %w", key, err)
	}

	return PutResult{Key: key, URL: s.publicURL(key)}, nil
}

// publicURL builds the URL a browser can fetch the object from. An explicit
// public base URL (e.g. a CDN) wins over the bucket endpoint convention.
func (s *S3Store) publicURL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	if s.endpoint != "" {
		base := strings.TrimRight(s.endpoint, "/")
		if s.pathStyle {
			return base + "/" + s.bucket + "/" + key
		}
		return base + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
