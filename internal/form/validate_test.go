package form

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		mode    Mode
		wantErr string
	}{
		{"create empty is allowed", "", CreateMode(), ""},
		{"edit empty is required", "", EditMode(1), "The task is required"},
		{"create one letter", "a", CreateMode(), ""},
		{"edit too short", "ab", EditMode(1), "The task must have at least 3 characters"},
		{"edit minimum", "abc", EditMode(1), ""},
		{"spaces allowed", "Buy  milk", CreateMode(), ""},
		{"digits rejected", "Buy 2 milks", CreateMode(), "Invalid task"},
		{"punctuation rejected", "Buy milk!", EditMode(1), "Invalid task"},
		{"accents rejected", "Café", CreateMode(), "Invalid task"},
		{"max length", strings.Repeat("a", MaxLength), CreateMode(), ""},
		{"too long", strings.Repeat("a", MaxLength+1), CreateMode(), "The task must have at most 50 characters"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.value, tc.mode)
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got '%s'", err.Message)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected '%s', got no error", tc.wantErr)
			}
			if err.Message != tc.wantErr {
				t.Errorf("Expected '%s', got '%s'", tc.wantErr, err.Message)
			}
		})
	}
}

func TestParseRoute(t *testing.T) {
	mode, err := ParseRoute("/")
	if err != nil || mode.IsEdit() {
		t.Errorf("Expected create mode for '/', got %v, %v", mode, err)
	}

	mode, err = ParseRoute("/Task/12")
	if err != nil {
		t.Fatalf("ParseRoute failed: %v", err)
	}
	if !mode.IsEdit() || mode.TaskID() != 12 {
		t.Errorf("Expected edit 12, got %v", mode)
	}
	if mode.Route() != "/Task/12" {
		t.Errorf("Expected route round trip, got '%s'", mode.Route())
	}

	for _, bad := range []string{"/Task/", "/Task/abc", "/Task/-1", "/tasks/1"} {
		if _, err := ParseRoute(bad); err == nil {
			t.Errorf("Expected error for '%s'", bad)
		}
	}
}
