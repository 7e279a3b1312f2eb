package handler

import (
	"net/http"

	"github.com/nekesuresh/RFP/service"
	"github.com/nekesuresh/RFP/types"
	log "github.com/sirupsen/logrus"
)

const maxUploadSize = 64 << 20 // 64MB

type UploadHandler struct {
	fileService *service.FileService
}

func NewUploadHandler(fileService *service.FileService) *UploadHandler {
	return &UploadHandler{
		fileService: fileService,
	}
}

// HandleUpload accepts a multipart PDF upload and returns the ingest task
// id immediately; processing continues in the background.
func (h *UploadHandler) HandleUpload() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			writeError(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}

		_, fileHeader, err := r.FormFile("file")
		if err != nil {
			writeError(w, "File is required", http.StatusBadRequest)
			return
		}

		req := types.UploadRequest{
			Title:  r.FormValue("title"),
			Source: r.FormValue("source"),
		}

		taskID, err := h.fileService.UploadFile(r.Context(), req, fileHeader)
		if err != nil {
			log.Errorln("upload failed:", err)
			writeError(w, "Upload failed: "+err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusAccepted, types.UploadResponse{
			Message: "PDF upload accepted, processing in background",
			TaskID:  taskID,
			Status:  types.TaskStatusProcessing,
		})
	})
}
