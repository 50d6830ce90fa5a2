package logger

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	appConfig "dotatracker/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Logger that we will use to save the sync run logs.
type RunLogger struct {
	mu       sync.Mutex
	logFile  *os.File
	filePath string
}

// Create the log instance with a temporary file.
func CreateLogger() (*RunLogger, error) {
	f, err := os.CreateTemp("", "sync-*.log")
	if err != nil {
		return nil, err
	}

	return &RunLogger{
		logFile:  f,
		filePath: f.Name(),
	}, nil
}

// Log a simple info.
func (l *RunLogger) Infof(format string, args ...interface{}) {
	l.write("[INFO]", format, args...)
}

// Log a warning.
func (l *RunLogger) Warnf(format string, args ...interface{}) {
	l.write("[WARN]", format, args...)
}

// Log a error.
func (l *RunLogger) Errorf(format string, args ...interface{}) {
	l.write("[ERROR]", format, args...)
}

// Write a empty line.
func (l *RunLogger) EmptyLine() {
	l.logFile.WriteString("\n")
}

// Write something to the logger.
func (l *RunLogger) write(infoType string, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("%-8s %s %s\n", infoType, timestamp, fmt.Sprintf(format, args...))

	l.logFile.WriteString(line)
}

// Clean the file contents.
func (l *RunLogger) CleanFile() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logFile.Truncate(0)

	l.logFile.Seek(0, 0)
}

// Upload the run log to a s3 compatible bucket.
// No-op when no bucket is configured, keeping the log local.
func (l *RunLogger) UploadToS3Bucket(objectKey string) error {
	if appConfig.Bucket.LogBucket == "" {
		return nil
	}

	if _, err := l.logFile.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to rewind file: %v", err)
	}

	// Get the config.
	cfg := aws.Config{
		Region: appConfig.Bucket.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				appConfig.Bucket.AccessKey,
				appConfig.Bucket.AccessSecret,
				"",
			),
		),
	}

	// Create the client.
	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(appConfig.Bucket.Endpoint)
	})

	// Run the put.
	_, err := s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket: aws.String(appConfig.Bucket.LogBucket),
		Key:    aws.String(objectKey),
		Body:   l.logFile,
		ACL:    types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3 bucket: %v", objectKey, err)
	}

	// Clean the file after sending.
	l.CleanFile()

	return nil
}
