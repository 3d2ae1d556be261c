package filestorage

import (
	"bytes"
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Provider - хранилище загруженных таблиц сотрудников
type Provider interface {
	UploadSheet(ctx context.Context, fileName string, fileReader io.Reader, fileSize int64) (sheetID string, err error)
	GetSheet(ctx context.Context, sheetID string) ([]byte, error)
	MakeBucket(ctx context.Context) error
}

var Instance Provider

func NewHandler(s3client *minio.Client, bucketName string) {
	Instance = &impl{
		s3client:   s3client,
		bucketName: bucketName,
	}
}

type impl struct {
	s3client   *minio.Client
	bucketName string
}

func (i impl) UploadSheet(ctx context.Context, fileName string, fileReader io.Reader, fileSize int64) (sheetID string, err error) {
	if i.s3client == nil {
		return "", errors.New("файловое хранилище не настроено")
	}
	sheetID = uuid.NewString()
	_, err = i.s3client.PutObject(ctx, i.bucketName, i.objectName(sheetID), fileReader, fileSize, minio.PutObjectOptions{
		ContentType:  xlsxContentType,
		UserMetadata: map[string]string{"file-name": fileName},
	})
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки файла в S3")
	}
	log.WithField("sheet_id", sheetID).WithField("file_name", fileName).Info("таблица загружена")
	return sheetID, nil
}

func (i impl) GetSheet(ctx context.Context, sheetID string) ([]byte, error) {
	if i.s3client == nil {
		return nil, errors.New("файловое хранилище не настроено")
	}
	obj, err := i.s3client.GetObject(ctx, i.bucketName, i.objectName(sheetID), minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения файла из S3")
	}
	defer obj.Close()
	buf := new(bytes.Buffer)
	_, err = io.Copy(buf, obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, nil
		}
		return nil, errors.Wrap(err, "ошибка чтения файла из S3")
	}
	return buf.Bytes(), nil
}

func (i impl) MakeBucket(ctx context.Context) error {
	if i.s3client == nil {
		return nil
	}
	location := "us-east-1"
	exists, err := i.s3client.BucketExists(ctx, i.bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return i.s3client.MakeBucket(ctx, i.bucketName, minio.MakeBucketOptions{Region: location})
}

func (i impl) objectName(sheetID string) string {
	return "sheets/" + sheetID + ".xlsx"
}
