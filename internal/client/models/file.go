package models

// FileUpload is a file staged on a form, sent as a multipart part.
type FileUpload struct {
	Field    string // multipart field name, e.g. "image"
	Path     string // local path read at submit time
	FileName string // name reported to the backend; defaults to the base of Path
}

// Blob is an opaque binary produced by the backend (report exports).
type Blob struct {
	ContentType string
	FileName    string // from Content-Disposition, when the backend sends one
	Data        []byte
}
