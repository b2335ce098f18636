package services

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"github.com/quillhq/quill/config"
)

const MaxImageFileSize = 10 * 1024 * 1024 // 10 MB

// MediaService stores uploaded post images and returns a retrievable URL.
type MediaService interface {
	UploadPostImage(fileHeader *multipart.FileHeader, userID uint) (string, error)
}

type mediaService struct {
	Config *config.Config
}

func NewMediaService(conf *config.Config) MediaService {
	return &mediaService{Config: conf}
}

func CheckImageFileSize(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxImageFileSize {
		return errors.New("file size exceeds the maximum allowed size")
	}
	return nil
}

func CheckSupportedImage(filename string) (bool, string) {
	supportedFileTypes := map[string]bool{
		".png":  true,
		".jpeg": true,
		".jpg":  true,
		".gif":  true,
	}
	fileExtension := filepath.Ext(filename)
	return supportedFileTypes[fileExtension], fileExtension
}

func generateUniqueFilename(extension string) string {
	timestamp := time.Now().UnixNano()
	randomUUID := uuid.New()
	return fmt.Sprintf("%d_%s%s", timestamp, randomUUID, extension)
}

func createS3Client(region string) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// UploadPostImage validates the upload, pushes the original plus a jpeg
// thumbnail to S3 and returns the original's URL.
func (m *mediaService) UploadPostImage(fileHeader *multipart.FileHeader, userID uint) (string, error) {
	if err := CheckImageFileSize(fileHeader); err != nil {
		return "", err
	}
	supported, ext := CheckSupportedImage(fileHeader.Filename)
	if !supported {
		return "", errors.Errorf("unsupported image type %q", ext)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", errors.Wrap(err, "could not open uploaded file")
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return "", errors.Wrap(err, "could not decode image")
	}

	client, err := createS3Client(m.Config.AwsRegion)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("posts/%d/%s", userID, generateUniqueFilename(ext))

	var original bytes.Buffer
	if err := imaging.Encode(&original, img, imaging.JPEG); err != nil {
		return "", errors.Wrap(err, "could not encode image")
	}
	if err := m.putObject(client, key, original.Bytes()); err != nil {
		return "", err
	}

	thumb := resize.Thumbnail(300, 300, img, resize.Lanczos3)
	var thumbBuf bytes.Buffer
	if err := jpeg.Encode(&thumbBuf, thumb, nil); err != nil {
		return "", errors.Wrap(err, "could not encode thumbnail")
	}
	thumbKey := fmt.Sprintf("posts/%d/thumb_%s", userID, filepath.Base(key))
	if err := m.putObject(client, thumbKey, thumbBuf.Bytes()); err != nil {
		return "", err
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Config.AwsBucket, m.Config.AwsRegion, key), nil
}

func (m *mediaService) putObject(client *s3.Client, key string, body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.Config.AwsBucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ACL:         types.ObjectCannedACLPublicRead,
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return errors.Wrap(err, "could not upload file to S3")
	}
	return nil
}
