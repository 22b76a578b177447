// internal/verification/upload.go
package verification

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
)

type UploadConfig struct {
	UseS3              bool
	S3Bucket           string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	LocalUploadDir     string
	BaseURL            string
}

// UploadService stores identity document photos under
// verifications/{userID}/. Unlike listing photos these objects are
// private: no public-read ACL on S3.
type UploadService struct {
	s3Client   *s3.S3
	bucketName string
	baseURL    string
	uploadDir  string
	useS3      bool
}

func NewUploadService(config UploadConfig) *UploadService {
	us := &UploadService{
		bucketName: config.S3Bucket,
		baseURL:    config.BaseURL,
		uploadDir:  config.LocalUploadDir,
		useS3:      config.UseS3,
	}

	if config.UseS3 {
		awsConfig := &aws.Config{Region: aws.String(config.AWSRegion)}
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

// UploadDocument stores one identity document photo. docType is "nic"
// or "student_id".
func (us *UploadService) UploadDocument(file multipart.File, header *multipart.FileHeader, userID int64, docType string) (string, error) {
	if err := us.validateFile(header); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("verifications/%d/%s_%d%s", userID, docType, time.Now().Unix(), ext)

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
		Bucket:      aws.String(us.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buffer.Bytes()),
		ContentType: aws.String(header.Header.Get("Content-Type")),
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
	maxSize := int64(10 << 20)
	if header.Size > maxSize {
		return fmt.Errorf("file size exceeds maximum of 10MB")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowedExts := map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
	}

	if !allowedExts[ext] {
		return fmt.Errorf("file type not allowed")
	}

	return nil
}
