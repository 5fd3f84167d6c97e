package todo

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TWRT/todolist/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/v1/", 2*time.Second)
}

func TestCreate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/Task/" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got '%s'", ct)
		}
		var in models.TaskInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if in.Description != "Buy milk" || in.Completed {
			t.Errorf("Unexpected body %+v", in)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Task{Id: 1, Description: in.Description})
	})

	task, err := client.Create(context.Background(), models.TaskInput{Description: "Buy milk"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if task.Id != 1 || task.Description != "Buy milk" || task.Completed {
		t.Errorf("Unexpected task %+v", task)
	}
}

func TestListQuery(t *testing.T) {
	yes := true
	cases := []struct {
		name string
		opts ListOptions
		want string
	}{
		{"empty", ListOptions{}, ""},
		{"blank search", ListOptions{Search: "   "}, ""},
		{"search", ListOptions{Search: "milk"}, "search=milk"},
		{"completed only", ListOptions{Completed: &yes}, "completed=true"},
		{"both", ListOptions{Search: "buy milk", Completed: &yes}, "completed=true&search=buy+milk"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.RawQuery != tc.want {
					t.Errorf("Expected query '%s', got '%s'", tc.want, r.URL.RawQuery)
				}
				json.NewEncoder(w).Encode([]models.Task{{Id: 2, Description: "Buy milk"}})
			})

			tasks, err := client.List(context.Background(), tc.opts)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(tasks) != 1 {
				t.Errorf("Expected 1 task, got %d", len(tasks))
			}
		})
	}
}

func TestListEmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "[]")
	})

	tasks, err := client.List(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", tasks)
	}
}

func TestGetNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/Task/42/" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"Not found."}`)
	})

	_, err := client.Get(context.Background(), 42)
	if err == nil {
		t.Fatal("Expected error for missing task")
	}
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("Expected *RequestError, got %T", err)
	}
	if reqErr.Message != "Not found." {
		t.Errorf("Expected server message, got '%s'", reqErr.Message)
	}
	if !IsNotFound(err) {
		t.Error("Expected IsNotFound to be true")
	}
}

func TestUpdate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/v1/Task/3/" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		var in models.TaskInput
		json.NewDecoder(r.Body).Decode(&in)
		json.NewEncoder(w).Encode(models.Task{Id: 3, Description: in.Description, Completed: in.Completed})
	})

	task, err := client.Update(context.Background(), 3, models.TaskInput{Description: "Walk dog", Completed: true})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !task.Completed || task.Description != "Walk dog" {
		t.Errorf("Unexpected task %+v", task)
	}
}

func TestDelete(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/v1/Task/5/" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.Delete(context.Background(), 5); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
}

func TestErrorMessageFallbacks(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message", `{"message":"description: This field may not be blank."}`, "description: This field may not be blank."},
		{"detail", `{"detail":"Method not allowed."}`, "Method not allowed."},
		{"error", `{"error":"boom"}`, "boom"},
		{"no body", ``, "request failed with status code 400"},
		{"not json", `<html>bad</html>`, "request failed with status code 400"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				io.WriteString(w, tc.body)
			})

			_, err := client.Create(context.Background(), models.TaskInput{})
			var reqErr *RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("Expected *RequestError, got %v", err)
			}
			if reqErr.Message != tc.want {
				t.Errorf("Expected '%s', got '%s'", tc.want, reqErr.Message)
			}
			if reqErr.StatusCode != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", reqErr.StatusCode)
			}
		})
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(srv.URL, time.Second)

	_, err := client.List(context.Background(), ListOptions{})
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("Expected *RequestError, got %v", err)
	}
	if reqErr.Message == "" {
		t.Error("Expected the transport message to be kept")
	}
	if reqErr.Unwrap() == nil {
		t.Error("Expected the transport error to be wrapped")
	}
}
