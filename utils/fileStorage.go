package utils

import (
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

// UploadFile stores an uploaded file and returns the URL it will be served
// from. When a remote storage service is configured the file goes there;
// otherwise it lands in the local uploads directory.
func UploadFile(file *multipart.FileHeader) (string, error) {
	cfg := config.AppConfig
	if cfg.StorageBaseURL == "" {
		path, err := SaveUploadedFile(file, "./public/uploads")
		if err != nil {
			return "", err
		}
		return GetFileURL(path), nil
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	client := resty.New().SetTimeout(30 * time.Second)
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+cfg.StorageAPIKey).
		SetFileReader("file", file.Filename, src).
		SetResult(&struct {
			URL string `json:"url"`
		}{}).
		Post(cfg.StorageBaseURL + "/files")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("storage upload failed: %s", resp.Status())
	}

	result := resp.Result().(*struct {
		URL string `json:"url"`
	})
	return result.URL, nil
}

// DeleteRemoteFile asks the storage service to remove a previously uploaded
// file. Callers run this in a goroutine: a failed delete only orphans the
// remote file and must never fail the database operation that triggered it.
func DeleteRemoteFile(fileURL string) {
	cfg := config.AppConfig
	if fileURL == "" || cfg.StorageBaseURL == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+cfg.StorageAPIKey).
		SetBody(map[string]string{"url": fileURL}).
		Post(cfg.StorageBaseURL + "/files/delete")
	if err != nil {
		log.Printf("Failed to delete remote file %s: %v", fileURL, err)
		return
	}
	if resp.IsError() {
		log.Printf("Storage service refused delete of %s: %s", fileURL, resp.Status())
	}
}
