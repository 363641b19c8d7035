package gallery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"mime"
	"strconv"
	"strings"
	"time"

	"djazair-backend/internal/cache"
	"djazair-backend/internal/models"

	"github.com/google/uuid"

	// decoders for DecodeConfig
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

const (
	MaxUploadBytes = 10 << 20
	// ListVersionKey names the current listing generation; listings are
	// cached under ListCacheKey + ":" + generation.
	ListVersionKey = "gallery:list:version"
	ListCacheKey   = "gallery:list"
)

var (
	ErrNotFound        = errors.New("image not found")
	ErrUnsupportedMime = errors.New("only jpeg, png and webp images are allowed")
	ErrTooLarge        = errors.New("image exceeds 10 MiB")
	ErrEmptyFile       = errors.New("file required")
	ErrNoContentStore  = errors.New("image content is in object storage but none is configured")
)

// formats maps each accepted mime type to the format reported in listings.
var formats = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

type Service struct {
	repo     Repository
	content  ContentStore
	cache    cache.Cache
	cacheTTL time.Duration
	log      *slog.Logger
	now      func() time.Time
}

// NewService wires the gallery. A nil content store keeps image bytes in the
// images table; a nil cache disables listing caching.
func NewService(repo Repository, content ContentStore, c cache.Cache, cacheTTL time.Duration, log *slog.Logger) *Service {
	if c == nil {
		c = cache.NewNoop()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{
		repo:     repo,
		content:  content,
		cache:    c,
		cacheTTL: cacheTTL,
		log:      log,
		now:      time.Now,
	}
}

// NormalizeMime strips parameters and case from a Content-Type value.
func NormalizeMime(value string) string {
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(value))
	}
	return mediaType
}

func AllowedMime(value string) bool {
	_, ok := formats[NormalizeMime(value)]
	return ok
}

func (s *Service) Create(ctx context.Context, up Upload) (Item, error) {
	mimeType := NormalizeMime(up.Mime)
	if !AllowedMime(mimeType) {
		return Item{}, ErrUnsupportedMime
	}
	if len(up.Data) == 0 {
		return Item{}, ErrEmptyFile
	}
	if len(up.Data) > MaxUploadBytes {
		return Item{}, ErrTooLarge
	}

	img := models.Image{
		Mime:      mimeType,
		Size:      int64(len(up.Data)),
		TitleFr:   up.TitleFr,
		CaptionFr: up.CaptionFr,
		CreatedAt: s.now().UTC(),
	}
	// dimensions are informational; undecodable headers leave them at zero
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(up.Data)); err == nil {
		img.Width, img.Height = cfg.Width, cfg.Height
	}

	if s.content != nil {
		img.StorageKey = NewContentKey()
		if err := s.content.Put(ctx, img.StorageKey, up.Data, mimeType); err != nil {
			return Item{}, fmt.Errorf("store content: %w", err)
		}
	} else {
		img.Data = up.Data
	}

	if err := s.repo.Create(ctx, &img); err != nil {
		if img.StorageKey != "" {
			s.deleteContent(ctx, img.StorageKey)
		}
		return Item{}, fmt.Errorf("insert image: %w", err)
	}

	s.invalidate(ctx)
	return toItem(img), nil
}

// List serves the listing from cache when possible. The generation is read
// before the database, so a listing loaded before a concurrent change is
// stored under a generation that change already retired.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	version := s.listVersion(ctx)
	if version != "" {
		var cached []Item
		ok, err := cache.GetJSON(ctx, s.cache, listKey(version), &cached)
		if err != nil {
			s.log.Warn("gallery list: cache read error", slog.String("error", err.Error()))
		}
		if ok {
			return cached, nil
		}
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, toItem(row))
	}

	if version == "" {
		return items, nil
	}
	if err := cache.SetJSON(ctx, s.cache, listKey(version), items, s.cacheTTL); err != nil {
		s.log.Warn("gallery list: cache write error", slog.String("error", err.Error()))
	}
	return items, nil
}

func (s *Service) Fetch(ctx context.Context, id uint) (Blob, error) {
	img, err := s.repo.Get(ctx, id)
	if err != nil {
		return Blob{}, err
	}

	data := img.Data
	if img.StorageKey != "" {
		if s.content == nil {
			return Blob{}, ErrNoContentStore
		}
		data, err = s.content.Get(ctx, img.StorageKey)
		if err != nil {
			return Blob{}, fmt.Errorf("load content %s: %w", img.StorageKey, err)
		}
	}
	return Blob{Mime: img.Mime, Data: data, CreatedAt: img.CreatedAt}, nil
}

func (s *Service) UpdateMetadata(ctx context.Context, id uint, patch MetadataPatch) error {
	set := make(map[string]interface{}, 2)
	if patch.TitleFr != nil {
		set["title_fr"] = *patch.TitleFr
	}
	if patch.CaptionFr != nil {
		set["caption_fr"] = *patch.CaptionFr
	}
	if err := s.repo.UpdateMetadata(ctx, id, set); err != nil {
		return err
	}
	if !patch.Empty() {
		s.invalidate(ctx)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	key, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	if key != "" {
		s.deleteContent(ctx, key)
	}
	return nil
}

// deleteContent removes the object owned by one row. Failures leave an
// orphaned object and are only logged.
func (s *Service) deleteContent(ctx context.Context, key string) {
	if s.content == nil {
		return
	}
	if err := s.content.Delete(ctx, key); err != nil {
		s.log.Warn("gallery content: delete error", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// listVersion returns the current listing generation. When there is none
// yet it starts one and returns "", so that call does not populate the
// cache with a listing that may predate a concurrent change.
func (s *Service) listVersion(ctx context.Context) string {
	raw, ok, err := s.cache.Get(ctx, ListVersionKey)
	if err != nil {
		s.log.Warn("gallery list: cache read error", slog.String("error", err.Error()))
		return ""
	}
	if ok && len(raw) > 0 {
		return string(raw)
	}
	s.bumpVersion(ctx)
	return ""
}

// invalidate retires the current listing generation.
func (s *Service) invalidate(ctx context.Context) {
	s.bumpVersion(ctx)
}

func (s *Service) bumpVersion(ctx context.Context) {
	if err := s.cache.Set(ctx, ListVersionKey, []byte(uuid.NewString()), 0); err != nil {
		s.log.Warn("gallery list: cache invalidate error", slog.String("error", err.Error()))
	}
}

func listKey(version string) string {
	return ListCacheKey + ":" + version
}

func toItem(img models.Image) Item {
	return Item{
		PublicID:  strconv.FormatUint(uint64(img.ID), 10),
		SecureURL: ImageURL(img.ID),
		TitleFr:   img.TitleFr,
		CaptionFr: img.CaptionFr,
		CreatedAt: img.CreatedAt,
		Format:    formats[img.Mime],
		Width:     img.Width,
		Height:    img.Height,
		Bytes:     img.Size,
	}
}
