package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nekesuresh/RFP/repository"
	"github.com/nekesuresh/RFP/types"
	log "github.com/sirupsen/logrus"
)

// FileService saves uploaded PDFs and runs ingestion in the background,
// tracking progress through the task repository so clients can poll by
// task id.
type FileService struct {
	uploadDir     string
	ingestService *IngestService
	taskRepo      repository.TaskRepo
}

func NewFileService(uploadDir string, ingestService *IngestService, taskRepo repository.TaskRepo) *FileService {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		panic(err)
	}
	return &FileService{
		uploadDir:     uploadDir,
		ingestService: ingestService,
		taskRepo:      taskRepo,
	}
}

// UploadFile stores the uploaded PDF and schedules ingestion. It returns
// the task id immediately; the ingest outcome lands in the task record.
func (s *FileService) UploadFile(ctx context.Context, req types.UploadRequest, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	title := req.Title
	if title == "" {
		title = file.Filename
	}
	destPath, err := s.saveUpload(src, title, ext)
	if err != nil {
		return "", err
	}

	now := time.Now().Unix()
	task := &types.IngestTask{
		ID:        uuid.New().String(),
		FileName:  filepath.Base(destPath),
		Status:    types.TaskStatusProcessing,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.taskRepo.CreateTask(ctx, task); err != nil {
		return "", fmt.Errorf("failed to create ingest task: %w", err)
	}

	go s.processInBackground(task, destPath)

	return task.ID, nil
}

// saveUpload writes the stream to uploadDir as name_timestamp.ext with
// unsafe filename characters replaced.
func (s *FileService) saveUpload(src io.Reader, title, ext string) (string, error) {
	originalName := strings.TrimSuffix(title, ext)
	timestamp := time.Now().Unix()
	filename := fmt.Sprintf("%s_%d%s", originalName, timestamp, ext)
	filename = sanitizeFilename(filename)

	destPath := filepath.Join(s.uploadDir, filename)
	dst, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return destPath, nil
}

func sanitizeFilename(filename string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, filename)
}

// processInBackground runs ingestion with a fresh context since the
// request context is gone once the upload response is sent.
func (s *FileService) processInBackground(task *types.IngestTask, filePath string) {
	ctx := context.Background()

	result, err := s.ingestService.IngestDocument(ctx, filePath)
	task.UpdatedAt = time.Now().Unix()
	if err != nil {
		log.Errorf("ingest task %s failed: %v", task.ID, err)
		task.Status = types.TaskStatusFailed
		task.Error = err.Error()
	} else {
		task.Status = types.TaskStatusCompleted
		task.ChunkCount = result.ChunkCount
		task.Stats = result.Stats
	}

	if err := s.taskRepo.UpdateTask(ctx, task); err != nil {
		log.Errorf("failed to update ingest task %s: %v", task.ID, err)
	}
}
