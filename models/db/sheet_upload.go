package dbmodels

// SheetUpload - метаданные загруженной таблицы, сам файл лежит в S3
type SheetUpload struct {
	BaseModel
	FileName   string
	FileSize   int64
	UploadedBy string
}
