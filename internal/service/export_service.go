package service

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pawmemo/pawmemo-backend/internal/models"
	"github.com/pawmemo/pawmemo-backend/pkg/jwt"
	"github.com/pawmemo/pawmemo-backend/pkg/storage"
	"go.uber.org/zap"
)

// ExportService packages a memorial's data into a zip archive. Requesting
// an export returns a short-lived signed download token rather than the
// archive itself; the archive is built when the token is redeemed.
type ExportService struct {
	memorials    MemorialStore
	photos       PhotoStore
	entitlements *EntitlementService
	storage      storage.StorageService
	logger       *zap.Logger
}

func NewExportService(memorials MemorialStore, photos PhotoStore, entitlements *EntitlementService, store storage.StorageService, logger *zap.Logger) *ExportService {
	return &ExportService{
		memorials:    memorials,
		photos:       photos,
		entitlements: entitlements,
		storage:      store,
		logger:       logger,
	}
}

// RequestExport checks the tier gate and ownership, then issues a download
// token for the memorial. Denials come back in the decision.
func (s *ExportService) RequestExport(userID uint, memorialID string) (string, models.Decision, error) {
	decision, err := s.entitlements.CanExport(userID)
	if err != nil {
		return "", models.Decision{}, err
	}
	if !decision.Allowed {
		return "", decision, nil
	}

	memorial, err := s.memorials.GetByID(memorialID)
	if err != nil {
		return "", models.Decision{}, ErrNotFound
	}
	if memorial.UserID != userID {
		return "", models.Decision{}, ErrUnauthorized
	}

	token, err := jwt.GenerateDownloadToken(userID, memorialID)
	if err != nil {
		return "", models.Decision{}, err
	}

	s.logger.Info("export requested", zap.String("memorial_id", memorialID), zap.Uint("user_id", userID))
	return token, decision, nil
}

// Download redeems a token and builds the archive. The filename is derived
// from the pet's name.
func (s *ExportService) Download(token string) ([]byte, string, error) {
	_, memorialID, err := jwt.ValidateDownloadToken(token)
	if err != nil {
		return nil, "", ErrInvalidToken
	}

	memorial, err := s.memorials.GetByID(memorialID)
	if err != nil {
		return nil, "", ErrNotFound
	}

	archive, err := s.buildArchive(memorial)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s-memorial-%s.zip", memorial.PetName, time.Now().Format("20060102"))
	return archive, filename, nil
}

// buildArchive assembles memorial.json, the guest book, the quiz answers,
// the AI letter, and a manifest of photo URLs into one zip.
func (s *ExportService) buildArchive(memorial *models.Memorial) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	if err := writeJSONEntry(zw, "memorial.json", memorial); err != nil {
		return nil, err
	}

	messages, err := s.memorials.GetMessages(memorial.ID)
	if err != nil {
		return nil, err
	}
	if len(messages) > 0 {
		if err := writeJSONEntry(zw, "guestbook.json", messages); err != nil {
			return nil, err
		}
	}

	answers, err := s.memorials.GetAnswers(memorial.ID)
	if err != nil {
		return nil, err
	}
	if len(answers) > 0 {
		if err := writeJSONEntry(zw, "personality-answers.json", answers); err != nil {
			return nil, err
		}
	}

	if memorial.AILetter != "" {
		w, err := zw.Create("letter.txt")
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(memorial.AILetter)); err != nil {
			return nil, err
		}
	}

	photos, err := s.photos.GetByMemorialID(memorial.ID)
	if err != nil {
		return nil, err
	}
	if len(photos) > 0 {
		manifest := make([]map[string]string, 0, len(photos))
		for _, p := range photos {
			manifest = append(manifest, map[string]string{
				"file_name": p.FileName,
				"url":       s.storage.PublicURL(p.R2Key),
			})
		}
		if err := writeJSONEntry(zw, "photos.json", manifest); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSONEntry(zw *zip.Writer, name string, v interface{}) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
