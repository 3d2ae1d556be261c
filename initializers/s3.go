package initializers

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
	"probation-eval-backend/config"
	filestorage "probation-eval-backend/lib/file-storage"
)

// InitS3 - без адреса S3 импорт таблиц недоступен, остальной сервис работает
func InitS3(ctx context.Context) {
	if config.Conf.S3.Endpoint == "" {
		log.Warn("S3 не настроен, загрузка таблиц отключена")
		filestorage.NewHandler(nil, config.Conf.S3.BucketName)
		return
	}
	minioClient, err := minio.New(config.Conf.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.Conf.S3.AccessKeyID, config.Conf.S3.SecretAccessKey, ""),
		Secure: *config.Conf.S3.UseSSL,
	})
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		filestorage.NewHandler(nil, config.Conf.S3.BucketName)
		return
	}
	filestorage.NewHandler(minioClient, config.Conf.S3.BucketName)

	// Проверка соединения
	if err = filestorage.Instance.MakeBucket(ctx); err != nil {
		log.WithError(err).Error("S3 соединение не удалось - бакет не создан")
		return
	}
	log.Info("S3 клиент успешно инициализирован")
}
