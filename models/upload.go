package models

// ImageUpload carries a profile picture received from a multipart form.
// The transport layer is responsible for enforcing size and content-type
// limits before the payload reaches a service.
type ImageUpload struct {
	// Name is the original file name; only its extension survives into the
	// object-store key.
	Name string

	// ContentType is the sniffed MIME type of the payload.
	ContentType string

	// Data is the full file contents.
	Data []byte
}
