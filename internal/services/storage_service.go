// internal/services/storage_service.go
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/petpalooza-backend/internal/config"
	"github.com/javajoker/petpalooza-backend/internal/models"
)

// StorageService turns stored image keys into URLs a browser can fetch.
// Keys live in S3 when a bucket is configured, otherwise under MEDIA_URL on
// this server.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

func NewStorageService(config *config.Config) (*StorageService, error) {
	if config.AWS.AccessKeyID == "" || config.AWS.S3Bucket == "" {
		// Local media only
		return &StorageService{config: config}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   config,
	}, nil
}

// ResolveURL returns the absolute URL for key. baseURL is the scheme and host
// of the current request and is used only for locally served media.
func (s *StorageService) ResolveURL(baseURL, key string) string {
	if key == "" {
		return ""
	}
	if isAbsoluteURL(key) {
		return key
	}
	key = strings.TrimLeft(key, "/")

	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.config.AWS.CloudFrontURL, key)
	}

	if s.s3Client != nil {
		if s.config.AWS.PublicBucket {
			return s.getS3URL(key)
		}
		url, err := s.GeneratePresignedURL(key, time.Duration(s.config.AWS.PresignTTL)*time.Minute)
		if err != nil {
			logrus.WithError(err).WithField("key", key).Warn("Failed to presign media URL")
			return s.getS3URL(key)
		}
		return url
	}

	if s.config.Server.PublicBaseURL != "" {
		baseURL = s.config.Server.PublicBaseURL
	}
	prefix := "/" + strings.Trim(s.config.Media.URLPrefix, "/") + "/"
	if prefix == "//" {
		prefix = "/"
	}
	return strings.TrimRight(baseURL, "/") + prefix + key
}

// Resolver binds ResolveURL to a request base URL for use with the models' ResolveMedia methods.
func (s *StorageService) Resolver(baseURL string) models.MediaResolver {
	return func(key string) string {
		return s.ResolveURL(baseURL, key)
	}
}

func (s *StorageService) GeneratePresignedURL(key string, expiration time.Duration) (string, error) {
	if s.s3Client == nil {
		return "", fmt.Errorf("S3 client not configured")
	}

	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(expiration)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url, nil
}

func (s *StorageService) getS3URL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}

func isAbsoluteURL(key string) bool {
	lower := strings.ToLower(key)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "//")
}
