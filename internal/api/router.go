package api

import (
	"database/sql"
	"net/http"

	"github.com/TWRT/todolist/internal/api/handlers"
	"github.com/TWRT/todolist/internal/repository"
	"github.com/TWRT/todolist/internal/service"
)

const BasePath = "/api/v1"

func SetupRouter(db *sql.DB) http.Handler {
	mux := http.NewServeMux()

	taskRepo := repository.NewTaskRepository(db)
	taskService := service.NewTaskService(taskRepo)
	taskHandler := handlers.NewTaskHandler(taskService)

	mux.HandleFunc("POST "+BasePath+"/Task/{$}", taskHandler.CreateTask)
	mux.HandleFunc("GET "+BasePath+"/Task/{$}", taskHandler.ListTasks)
	mux.HandleFunc("GET "+BasePath+"/Task/{id}/{$}", taskHandler.GetTask)
	mux.HandleFunc("PUT "+BasePath+"/Task/{id}/{$}", taskHandler.UpdateTask)
	mux.HandleFunc("PATCH "+BasePath+"/Task/{id}/{$}", taskHandler.PatchTask)
	mux.HandleFunc("DELETE "+BasePath+"/Task/{id}/{$}", taskHandler.DeleteTask)

	return LogRequests(mux)
}
