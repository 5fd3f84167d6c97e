package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/TWRT/todolist/internal/models"
	"github.com/TWRT/todolist/internal/repository"
	"github.com/TWRT/todolist/internal/service"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var input models.TaskInput
	if !decodeBody(w, r, &input) {
		return
	}

	task, err := h.taskService.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, "Error trying to create the task", err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var completed *bool
	if raw := query.Get("completed"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "completed: Must be a valid boolean.")
			return
		}
		completed = &v
	}

	tasks, err := h.taskService.List(r.Context(), query.Get("search"), completed)
	if err != nil {
		writeServiceError(w, "Error trying to list tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, "Error trying to get the task", err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input models.TaskInput
	if !decodeBody(w, r, &input) {
		return
	}

	task, err := h.taskService.Update(r.Context(), id, input)
	if err != nil {
		writeServiceError(w, "Error trying to update the task", err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) PatchTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch service.TaskPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	task, err := h.taskService.Patch(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, "Error trying to update the task", err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, "Error trying to delete the task", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, "Not found.")
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error trying to read the body: "+err.Error())
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeError(w, http.StatusBadRequest, "JSON error: "+err.Error())
		return false
	}
	return true
}

func writeServiceError(w http.ResponseWriter, context string, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found.")
	default:
		log.Printf("%s: %v", context, err)
		writeError(w, http.StatusInternalServerError, context+": "+err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"message": message,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}
