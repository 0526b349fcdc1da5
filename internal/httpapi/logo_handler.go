package httpapi

import (
	"encoding/base64"
	"net/http"
	"os"
	"path/filepath"
	"regexp"

	"go.uber.org/zap"
)

// maxLogoBytes caps the decoded upload at 2 MiB.
const maxLogoBytes = 2 * 1024 * 1024

var dataURLPattern = regexp.MustCompile(`^data:(image/[a-zA-Z+.-]+);base64,(.+)$`)

// LogoHandler stores the uploaded board logo. Unrelated to the sync core:
// no broadcast, clients pick the new image up on reload.
type LogoHandler struct {
	publicDir string
	logger    *zap.Logger
}

func NewLogoHandler(publicDir string, logger *zap.Logger) *LogoHandler {
	return &LogoHandler{publicDir: publicDir, logger: logger}
}

// Upload accepts {"image": "data:image/...;base64,..."} and writes the
// decoded bytes to images/logo.png under the public dir. Temp file plus
// rename, so a failed upload never leaves a partial logo behind.
func (h *LogoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Image string `json:"image"`
	}
	// 4 MiB of base64 text decodes to at most ~3 MiB; the decoded size
	// check below enforces the real ceiling.
	if err := readBodyJSON(r, 4*1024*1024, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Image == "" {
		writeError(w, http.StatusBadRequest, "No image provided")
		return
	}

	match := dataURLPattern.FindStringSubmatch(body.Image)
	if match == nil {
		writeError(w, http.StatusBadRequest, "Invalid image data")
		return
	}
	data, err := base64.StdEncoding.DecodeString(match[2])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid image data")
		return
	}
	if len(data) > maxLogoBytes {
		writeError(w, http.StatusBadRequest, "Image must be under 2 MB")
		return
	}

	dir := filepath.Join(h.publicDir, "images")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		h.logger.Error("failed to create images dir", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	tmp, err := os.CreateTemp(dir, "logo-*.tmp")
	if err != nil {
		h.logger.Error("failed to create temp logo", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		h.logger.Error("failed to write logo", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		h.logger.Error("failed to write logo", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, "logo.png")); err != nil {
		os.Remove(tmp.Name())
		h.logger.Error("failed to replace logo", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
