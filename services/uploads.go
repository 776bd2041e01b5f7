package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// uploadURLExpiry bounds how long a presigned upload URL stays usable.
const uploadURLExpiry = 15 * time.Minute

// UploadTarget is handed to the admin console: PUT the file to UploadURL,
// then store PublicURL on the media record.
type UploadTarget struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
}

// S3Uploader issues presigned PUT URLs for gallery assets.
type S3Uploader struct {
	presigner *s3.PresignClient
	bucket    string
	region    string
}

func NewS3Uploader(ctx context.Context, bucket, region string) (*S3Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg)
	return &S3Uploader{
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		region:    region,
	}, nil
}

// PresignUpload returns a short-lived upload URL for a new object keyed
// under media/. The original filename only contributes its extension.
func (u *S3Uploader) PresignUpload(ctx context.Context, filename, contentType string) (*UploadTarget, error) {
	key := fmt.Sprintf("media/%s%s", uuid.New(), filepath.Ext(filename))

	request, err := u.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(uploadURLExpiry))
	if err != nil {
		return nil, err
	}

	return &UploadTarget{
		Key:       key,
		UploadURL: request.URL,
		PublicURL: fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key),
	}, nil
}
