package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	pkgerrors "github.com/pkg/errors"

	"github.com/silinternational/cover-agri/domain"
)

const snapshotPrefix = "snapshots"

type awsConfig struct {
	awsAccessKeyID     string
	awsSecretAccessKey string
	awsEndpoint        string
	awsRegion          string
	awsS3Bucket        string
	awsDisableSSL      bool
}

func getS3ConfigFromEnv() awsConfig {
	var a awsConfig
	a.awsAccessKeyID = domain.Env.AwsAccessKeyID
	a.awsSecretAccessKey = domain.Env.AwsSecretAccessKey
	a.awsEndpoint = domain.Env.AwsS3Endpoint
	a.awsRegion = domain.Env.AwsRegion
	a.awsS3Bucket = domain.Env.AwsS3Bucket
	a.awsDisableSSL = domain.Env.AwsS3DisableSSL

	// minIO in development and test accepts any static credentials
	if (domain.Env.GoEnv == domain.EnvDevelopment || domain.Env.GoEnv == domain.EnvTest) && a.awsAccessKeyID == "" {
		a.awsAccessKeyID = "abc123"
		a.awsSecretAccessKey = "abcd1234"
	}
	return a
}

func createS3Service(config awsConfig) (*s3.S3, error) {
	awsCfg := &aws.Config{
		Region:           aws.String(config.awsRegion),
		DisableSSL:       aws.Bool(config.awsDisableSSL),
		S3ForcePathStyle: aws.Bool(len(config.awsEndpoint) > 0),
	}
	if config.awsEndpoint != "" {
		awsCfg.Endpoint = aws.String(config.awsEndpoint)
	}
	if config.awsAccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(config.awsAccessKeyID, config.awsSecretAccessKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, err
	}
	return s3.New(sess), nil
}

// S3Store keeps snapshots as objects in an S3 bucket or an S3 compatible store such as minIO
type S3Store struct {
	svc    *s3.S3
	bucket string
}

// NewS3Store connects using the AWS settings in the environment
func NewS3Store() (*S3Store, error) {
	config := getS3ConfigFromEnv()
	if config.awsS3Bucket == "" {
		return nil, errors.New("AWS_S3_BUCKET is required for s3 persistence")
	}

	svc, err := createS3Service(config)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "create s3 session")
	}
	return &S3Store{svc: svc, bucket: config.awsS3Bucket}, nil
}

func (s *S3Store) objectKey(key string) string {
	return path.Join(snapshotPrefix, objectName(key))
}

func (s *S3Store) Load(ctx context.Context, key string) ([]byte, error) {
	out, err := s.svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, nil
		}
		return nil, pkgerrors.Wrapf(err, "get snapshot %s from bucket %s", key, s.bucket)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "read snapshot %s", key)
	}
	return data, nil
}

func (s *S3Store) Save(ctx context.Context, key string, data []byte) error {
	_, err := s.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(key)),
		ContentType: aws.String("application/json"),
		Body:        bytes.NewReader(data),
	})
	if err != nil {
		return pkgerrors.Wrapf(err, "put snapshot %s to bucket %s", key, s.bucket)
	}
	return nil
}

// CreateS3Bucket creates an S3 bucket with a name defined by an environment variable. If the bucket already
// exists, it will not return an error.
func CreateS3Bucket() error {
	env := domain.Env.GoEnv
	if env != domain.EnvTest && env != domain.EnvDevelopment {
		return errors.New("CreateS3Bucket should only be used in test and development")
	}

	config := getS3ConfigFromEnv()

	svc, err := createS3Service(config)
	if err != nil {
		return err
	}

	c := &s3.CreateBucketInput{Bucket: aws.String(config.awsS3Bucket)}
	if _, err := svc.CreateBucket(c); err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) {
			switch aerr.Code() {
			case s3.ErrCodeBucketAlreadyExists:
			case s3.ErrCodeBucketAlreadyOwnedByYou:
			default:
				return err
			}
		} else {
			return err
		}
	}
	return nil
}
