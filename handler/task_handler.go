package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/nekesuresh/RFP/repository"
	"github.com/nekesuresh/RFP/types"
)

type TaskHandler struct {
	taskRepo repository.TaskRepo
}

func NewTaskHandler(taskRepo repository.TaskRepo) *TaskHandler {
	return &TaskHandler{
		taskRepo: taskRepo,
	}
}

// HandleGetTask returns one ingest task by id (id query parameter).
func (h *TaskHandler) HandleGetTask() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		id := r.URL.Query().Get("id")
		if id == "" {
			writeError(w, "Task id is required", http.StatusBadRequest)
			return
		}

		task, err := h.taskRepo.GetTask(r.Context(), id)
		if err != nil {
			writeError(w, "Task not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, types.DataResponse{
			Status: true,
			Data:   task,
		})
	})
}

// HandleListTasks returns recent ingest tasks, optionally filtered by a
// comma-separated status parameter.
func (h *TaskHandler) HandleListTasks() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var status []string
		if raw := r.URL.Query().Get("status"); raw != "" {
			status = strings.Split(raw, ",")
		}
		limit := 20
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				writeError(w, "Invalid limit", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		tasks, err := h.taskRepo.ListTasks(r.Context(), status, limit)
		if err != nil {
			writeError(w, "Failed to list tasks: "+err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, types.DataResponse{
			Status: true,
			Data:   tasks,
		})
	})
}
