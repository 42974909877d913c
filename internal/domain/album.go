package domain

import "fmt"

// Album represents a selectable upload destination
type Album struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FindAlbum returns the album with the given id from a catalog listing
func FindAlbum(albums []Album, id string) (Album, bool) {
	for _, album := range albums {
		if album.ID == id {
			return album, true
		}
	}
	return Album{}, false
}

// Image represents a downloaded platform file with its measured dimensions
type Image struct {
	FileRef string
	Bytes   []byte
	Format  string // decoder name reported by image.DecodeConfig
	Width   int
	Height  int
}

// Resolution returns the "{width}x{height}" representation sent to the upload backend
func (i Image) Resolution() string {
	return fmt.Sprintf("%dx%d", i.Width, i.Height)
}

// UploadRecord represents the payload persisted by the upload backend
type UploadRecord struct {
	Title      string
	Resolution string
	AlbumID    string
	FileName   string
	ImageBytes []byte
}

// Receipt represents the backend acknowledgement of a stored record
type Receipt struct {
	ID         string
	Collection string
}
