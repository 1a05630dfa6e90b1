package db

import (
	"bytes"
	"context"
	"io"
	"path"

	"github.com/EO-DataHub/eodhp-resource-services/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store keeps each collection as a JSON object under Prefix in Bucket.
type S3Store struct {
	Client S3API
	Bucket string
	Prefix string
	Log    *zerolog.Logger
}

func NewS3Store(client S3API, bucket, prefix string, log *zerolog.Logger) *S3Store {
	return &S3Store{Client: client, Bucket: bucket, Prefix: prefix, Log: orNop(log)}
}

// Key returns the object key backing the named collection.
func (s *S3Store) Key(name string) string {
	return path.Join(s.Prefix, name+".json")
}

func (s *S3Store) Load(ctx context.Context, name string) ([]models.Record, error) {
	key := s.Key(name)

	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			return nil, loadFailure(name, errors.Wrapf(ErrCollectionNotFound, "s3://%s/%s", s.Bucket, key))
		}
		return nil, loadFailure(name, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, loadFailure(name, err)
	}

	records, err := decodeCollection(data)
	if err != nil {
		return nil, loadFailure(name, err)
	}

	s.Log.Debug().Str("collection", name).Str("key", key).Int("count", len(records)).Msg("collection loaded")
	return records, nil
}

func (s *S3Store) Save(ctx context.Context, name string, records []models.Record) error {
	data, err := encodeCollection(records)
	if err != nil {
		return saveFailure(name, err)
	}

	key := s.Key(name)
	_, err = s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return saveFailure(name, err)
	}

	s.Log.Debug().Str("collection", name).Str("key", key).Int("count", len(records)).Msg("collection saved")
	return nil
}

func (s *S3Store) Close() error { return nil }
