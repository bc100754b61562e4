package media

// UploadInput is a fully-read upload ready for validation.
type UploadInput struct {
	Kind     string
	Title    string
	FileName string
	Data     []byte
}

type GalleryResponse struct {
	Items []*MediaAsset `json:"items"`
}
