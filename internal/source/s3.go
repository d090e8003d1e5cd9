package source

import (
	"context"
	"io/ioutil"
	"net/http"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type s3Store struct {
	region  string
	profile string

	once    sync.Once
	client  *s3.S3
	initErr error
}

var _ Store = (*s3Store)(nil)

func newS3Store(region, profile string) *s3Store {
	return &s3Store{region: region, profile: profile}
}

func (s *s3Store) init() {
	const maxRetries = 4
	cfg := &aws.Config{MaxRetries: aws.Int(maxRetries)}
	if s.region != "" {
		cfg.Region = aws.String(s.region)
	}
	if s.profile != "" {
		cfg.Credentials = credentials.NewSharedCredentials("", s.profile)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		s.initErr = errors.WithStack(err)
		return
	}
	s.client = s3.New(sess)
}

// splitS3Path splits "s3://bucket/some/key" into bucket and key.
func splitS3Path(path string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(path, s3Scheme)
	i := strings.IndexByte(rest, '/')
	if rest == path || i <= 0 || i == len(rest)-1 {
		return "", "", errorf("splitS3Path", "malformed S3 path %q, want s3://bucket/key", path)
	}
	return rest[:i], rest[i+1:], nil
}

func (s *s3Store) Get(ctx context.Context, path string) (contents []byte, err error) {
	bucket, key, err := splitS3Path(path)
	if err != nil {
		return nil, err
	}
	s.once.Do(s.init)
	if s.initErr != nil {
		return nil, s.initErr
	}
	output, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if rfErr, ok := err.(awserr.RequestFailure); ok {
			if rfErr.StatusCode() == http.StatusNotFound {
				return nil, errors.Wrapf(ErrNotFound, "path=%q err=%+v", path, err)
			}
		}
		return nil, errors.WithStack(err)
	}
	defer func() {
		if err := output.Body.Close(); err != nil {
			log.WithFields(log.Fields{
				"path":  path,
				"cause": err,
			}).Warning("Could not close response body")
		}
	}()
	return ioutil.ReadAll(output.Body)
}
