package gallery

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidPublicID = errors.New("public_id must be a positive integer")

// PublicID is an image id as sent by the admin client: either a JSON number
// or a string holding one. The zero value means the field was absent.
type PublicID uint

func (p *PublicID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalidPublicID
		}
		raw = strings.TrimSpace(s)
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return ErrInvalidPublicID
	}
	*p = PublicID(id)
	return nil
}

func (p PublicID) String() string {
	return strconv.FormatUint(uint64(p), 10)
}

type Item struct {
	PublicID  string    `json:"public_id"`
	SecureURL string    `json:"secure_url"`
	TitleFr   string    `json:"title_fr"`
	CaptionFr string    `json:"caption_fr"`
	CreatedAt time.Time `json:"created_at"`
	Format    string    `json:"format"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Bytes     int64     `json:"bytes"`
}

type Upload struct {
	Data      []byte
	Mime      string
	TitleFr   string
	CaptionFr string
}

type Blob struct {
	Mime      string
	Data      []byte
	CreatedAt time.Time
}

// MetadataPatch carries the caption fields to change; nil leaves a field as is.
type MetadataPatch struct {
	TitleFr   *string
	CaptionFr *string
}

func (p MetadataPatch) Empty() bool {
	return p.TitleFr == nil && p.CaptionFr == nil
}

type UploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	CaptionFr string `json:"caption_fr"`
}

type UpdateRequest struct {
	PublicID  PublicID `json:"public_id"`
	CaptionFr *string  `json:"caption_fr"`
	TitleFr   *string  `json:"title_fr"`
}

type DeleteRequest struct {
	PublicID PublicID `json:"public_id"`
}

// ImageURL is the public path serving the content of image id.
func ImageURL(id uint) string {
	return "/api/image/" + strconv.FormatUint(uint64(id), 10)
}
