// Package s3assets resolves stored asset ids (enterprise logos) to URLs
// on an S3-compatible object store.
package s3assets

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultURLTTL = 15 * time.Minute

var _ ports.AssetResolver = (*Resolver)(nil)

type presigner interface {
	PresignGetObject(
		ctx context.Context,
		params *s3.GetObjectInput,
		optFns ...func(*s3.PresignOptions),
	) (*v4.PresignedHTTPRequest, error)
}

// Settings configures the resolver.
//
// When PublicBaseURL is set the bucket is assumed to be publicly readable
// and URLs are built by joining the base with the asset id; nothing is signed.
type Settings struct {
	Bucket        string
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	URLTTL        time.Duration
}

// Resolver implements ports.AssetResolver.
type Resolver struct {
	bucket     string
	publicBase *url.URL
	ttl        time.Duration
	presigner  presigner
}

// NewResolver builds a resolver from settings, creating an S3 client unless
// a public base URL makes signing unnecessary.
func NewResolver(ctx context.Context, settings Settings) (*Resolver, error) {
	if settings.PublicBaseURL != "" {
		return newPublicResolver(settings.PublicBaseURL)
	}

	if settings.Bucket == "" {
		return nil, errs.NewValueIsRequiredError("asset bucket")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(regionOrDefault(settings.Region)),
	}
	if settings.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(settings.AccessKey, settings.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load object store config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(settings.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewResolverWithPresigner(s3.NewPresignClient(client), settings.Bucket, settings.URLTTL), nil
}

// NewResolverWithPresigner creates a signing resolver over an existing presigner.
func NewResolverWithPresigner(p presigner, bucket string, ttl time.Duration) *Resolver {
	if ttl <= 0 {
		ttl = defaultURLTTL
	}
	return &Resolver{bucket: bucket, ttl: ttl, presigner: p}
}

func newPublicResolver(base string) (*Resolver, error) {
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, errs.NewValueIsInvalidErrorWithCause("asset public base url", err)
	}
	return &Resolver{publicBase: parsed}, nil
}

// Resolve returns a fetchable URL for assetID. An empty id resolves to "".
func (r *Resolver) Resolve(ctx context.Context, assetID string) (string, error) {
	key := strings.TrimLeft(strings.TrimSpace(assetID), "/")
	if key == "" {
		return "", nil
	}

	if r.publicBase != nil {
		return r.publicBase.JoinPath(key).String(), nil
	}

	req, err := r.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(r.ttl))
	if err != nil {
		return "", fmt.Errorf("presign asset %q: %w", key, err)
	}

	return req.URL, nil
}

// TTL is how long signed URLs stay valid; zero for public URLs.
func (r *Resolver) TTL() time.Duration {
	return r.ttl
}

func regionOrDefault(region string) string {
	if region == "" {
		return "auto"
	}
	return region
}
