package controllers

import (
	"errors"
	"io"
	"mime/multipart"
)

const maxImageSize = 5 * 1024 * 1024 // 5 MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// readImageUpload validates and buffers a multipart image field.
func readImageUpload(file *multipart.FileHeader) ([]byte, string, error) {
	if file.Size > maxImageSize {
		return nil, "", errors.New("image must be 5MB or smaller")
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return nil, "", errors.New("only JPEG/PNG images are allowed")
	}

	f, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageSize+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) > maxImageSize {
		return nil, "", errors.New("image must be 5MB or smaller")
	}

	return data, contentType, nil
}
