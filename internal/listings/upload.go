// internal/listings/upload.go
package listings

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

type UploadConfig struct {
	UseS3              bool
	S3Bucket           string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	LocalUploadDir     string
	BaseURL            string
	MaxSizeMB          int
}

// UploadService stores listing photos on S3 or on local disk under
// listings/{listingID}/. Photo URLs are public.
type UploadService struct {
	s3Client   *s3.S3
	bucketName string
	baseURL    string
	uploadDir  string
	maxSizeMB  int
	useS3      bool
}

func NewUploadService(config UploadConfig) *UploadService {
	us := &UploadService{
		bucketName: config.S3Bucket,
		baseURL:    config.BaseURL,
		uploadDir:  config.LocalUploadDir,
		maxSizeMB:  config.MaxSizeMB,
		useS3:      config.UseS3,
	}

	if us.maxSizeMB <= 0 {
		us.maxSizeMB = 10
	}

	if config.UseS3 {
		awsConfig := &aws.Config{Region: aws.String(config.AWSRegion)}
		// Explicit keys win; otherwise the SDK falls back to its own
		// credential chain (env, shared config, instance role)
		if config.AWSAccessKeyID != "" {
			awsConfig.Credentials = credentials.NewStaticCredentials(
				config.AWSAccessKeyID, config.AWSSecretAccessKey, "")
		}
		sess := session.Must(session.NewSession(awsConfig))
		us.s3Client = s3.New(sess)
	} else {
		if err := os.MkdirAll(config.LocalUploadDir, 0755); err != nil {
			panic("Failed to create upload directory: " + err.Error())
		}
	}

	return us
}

// UploadPhoto stores one listing photo and returns its public URL.
// Index preserves the photo order chosen by the landlord.
func (us *UploadService) UploadPhoto(file multipart.File, header *multipart.FileHeader, listingID int64, index int) (string, error) {
	if err := us.validateFile(header); err != nil {
		return "", err
	}

	filename := us.generateFilename(header.Filename, index)
	key := fmt.Sprintf("listings/%d/%s", listingID, filename)

	if us.useS3 {
		return us.uploadToS3(file, key, header)
	}

	return us.uploadToLocal(file, key)
}

func (us *UploadService) uploadToS3(file multipart.File, key string, header *multipart.FileHeader) (string, error) {
	buffer := bytes.NewBuffer(nil)
	if _, err := io.Copy(buffer, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	_, err := us.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:             aws.String(us.bucketName),
		Key:                aws.String(key),
		Body:               bytes.NewReader(buffer.Bytes()),
		ContentType:        aws.String(header.Header.Get("Content-Type")),
		ContentDisposition: aws.String("inline"),
		ACL:                aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", us.bucketName, key), nil
}

func (us *UploadService) uploadToLocal(file multipart.File, key string) (string, error) {
	destPath := filepath.Join(us.uploadDir, key)

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, file); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s", us.baseURL, key), nil
}

func (us *UploadService) validateFile(header *multipart.FileHeader) error {
	maxSize := int64(us.maxSizeMB) << 20
	if header.Size > maxSize {
		return fmt.Errorf("file size exceeds maximum of %dMB", us.maxSizeMB)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowedExts := map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
	}

	if !allowedExts[ext] {
		return fmt.Errorf("file type not allowed")
	}

	return nil
}

func (us *UploadService) generateFilename(originalName string, index int) string {
	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("photo_%d_%d_%s%s", index, time.Now().Unix(), uuid.New().String()[:8], ext)
}

func (us *UploadService) DeleteFile(fileURL string) error {
	if us.useS3 {
		key := strings.TrimPrefix(fileURL, fmt.Sprintf("https://%s.s3.amazonaws.com/", us.bucketName))
		_, err := us.s3Client.DeleteObject(&s3.DeleteObjectInput{
			Bucket: aws.String(us.bucketName),
			Key:    aws.String(key),
		})
		return err
	}

	urlPath := strings.TrimPrefix(fileURL, us.baseURL)
	localPath := filepath.Join(us.uploadDir, strings.TrimPrefix(urlPath, "/uploads/"))
	return os.Remove(localPath)
}
