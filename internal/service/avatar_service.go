package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"

	"chirp/internal/config"
	"chirp/internal/models"
	"chirp/internal/repository"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultAvatarDir        = "/tmp/chirp/uploads/avatars"
	AvatarMaxUploadSizeMB   = 5
	AvatarSizePx            = 512
	AvatarWebPQuality       = 80
	avatarPublicPathPattern = "/media/avatars/%s.webp"
)

type UploadAvatarInput struct {
	UserID      uint
	Filename    string
	ContentType string
	Content     []byte
}

// AvatarService stores profile avatars. Every upload is center-cropped to a
// square and re-encoded as WebP, so stored files carry no original metadata.
type AvatarService struct {
	profileRepo repository.ProfileRepository
	uploadDir   string
}

func NewAvatarService(profileRepo repository.ProfileRepository, cfg *config.Config) *AvatarService {
	uploadDir := DefaultAvatarDir
	if cfg != nil && cfg.AvatarDir != "" {
		uploadDir = cfg.AvatarDir
	}
	return &AvatarService{profileRepo: profileRepo, uploadDir: uploadDir}
}

// Upload validates, re-encodes and stores the avatar, then points the
// user's profile at the new file.
func (s *AvatarService) Upload(ctx context.Context, in UploadAvatarInput) (*models.Profile, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > AvatarMaxUploadSizeMB*1024*1024 {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", AvatarMaxUploadSizeMB))
	}

	detectedType := http.DetectContentType(in.Content)
	switch detectedType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
	default:
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, _, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}

	square := cropSquare(decoded)
	sized := resizeAvatar(square, AvatarSizePx)

	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, sized, &webp.Options{Quality: AvatarWebPQuality}); err != nil {
		return nil, models.NewInternalError(err)
	}
	encoded := buf.Bytes()

	hash := avatarHash(in.UserID, encoded)
	path := filepath.Join(s.uploadDir, hash+".webp")
	if err := writeAvatarFile(path, encoded); err != nil {
		return nil, models.NewInternalError(err)
	}

	profileID, err := s.profileRepo.IDForUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetByID(ctx, profileID, 0)
	if err != nil {
		return nil, err
	}
	profile.Avatar = fmt.Sprintf(avatarPublicPathPattern, hash)
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		_ = os.Remove(path)
		return nil, err
	}
	return profile, nil
}

// ResolvePath maps a stored avatar hash to its file on disk for serving.
func (s *AvatarService) ResolvePath(hash string) (string, error) {
	if !isAvatarHash(hash) {
		return "", models.NewValidationError("Invalid avatar name")
	}
	path := filepath.Join(s.uploadDir, hash+".webp")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", models.NewNotFoundError("Avatar", hash)
		}
		return "", models.NewInternalError(err)
	}
	return path, nil
}

// isAvatarHash accepts only lowercase hex, which blocks path traversal via
// crafted names.
func isAvatarHash(hash string) bool {
	if len(hash) == 0 || len(hash) > 128 {
		return false
	}
	for _, c := range hash {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func cropSquare(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == h {
		return src
	}
	side := w
	if h < side {
		side = h
	}
	x := b.Min.X + (w-side)/2
	y := b.Min.Y + (h-side)/2
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(dst, dst.Bounds(), src, image.Point{X: x, Y: y}, draw.Src)
	return dst
}

func resizeAvatar(src image.Image, size int) image.Image {
	b := src.Bounds()
	if b.Dx() <= size && b.Dy() <= size {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

func avatarHash(userID uint, content []byte) string {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%d:", userID)
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

func writeAvatarFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
