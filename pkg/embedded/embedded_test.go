package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/tuning.yaml": {Data: []byte("screen:\n  width: 320\n")},
		"data/texts.yaml":  {Data: []byte("languages: {}\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	Init(nil)
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
	Init(nil)
}

func TestNotInitialized(t *testing.T) {
	Init(nil)

	if _, err := ReadFile("data/tuning.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized from ReadFile, got %v", err)
	}
}

func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"plain", "data/tuning.yaml", false},
		{"dot prefix", "./data/texts.yaml", false},
		{"missing", "data/missing.yaml", true},
		{"wrong prefix", "assets/logo.png", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %s", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(data) == 0 {
				t.Errorf("Expected content for %s", tt.path)
			}
		})
	}
}
