package service

import "io"

// UploadFile carries one file out of a multipart request into a service.
type UploadFile struct {
	Reader   io.Reader
	FileName string
}
