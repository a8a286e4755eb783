package embedded

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
)

func reset() {
	assetsFS, dataFS = nil, nil
	initialized = false
}

func initTestFS(t *testing.T) {
	t.Helper()
	t.Cleanup(reset)

	Init(
		fstest.MapFS{
			"assets/models/star.obj": {Data: []byte("o IcoSphere\n")},
			"assets/models/star.mtl": {Data: []byte("newmtl StarCore\n")},
		},
		fstest.MapFS{
			"data/starfield.yaml": {Data: []byte("total: 10\n")},
		},
	)
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	reset()
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	initTestFS(t)
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
}

// TestNotInitialized 测试未初始化时的所有入口
func TestNotInitialized(t *testing.T) {
	reset()

	if _, err := Open("assets/test.png"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Open: expected ErrNotInitialized, got %v", err)
	}
	if _, err := ReadFile("data/test.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile: expected ErrNotInitialized, got %v", err)
	}
	if _, err := Glob("assets/*.png"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Glob: expected ErrNotInitialized, got %v", err)
	}
	if Exists("assets/test.png") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

// TestRouting 路径前缀决定使用哪个文件系统
func TestRouting(t *testing.T) {
	initTestFS(t)

	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"assets/models/star.obj", "o IcoSphere\n", false},
		{"./data/starfield.yaml", "total: 10\n", false},
		{"data/../data/starfield.yaml", "total: 10\n", false},
		{"models/star.obj", "", true},
		{"assets/missing.png", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFile(%s) error: %v", tt.path, err)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%s) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestFS(t *testing.T) {
	initTestFS(t)

	data, err := fs.ReadFile(FS(), "assets/models/star.mtl")
	if err != nil {
		t.Fatalf("fs.ReadFile via FS() error: %v", err)
	}
	if string(data) != "newmtl StarCore\n" {
		t.Errorf("unexpected content %q", data)
	}

	matches, err := Glob("assets/models/*.obj")
	if err != nil {
		t.Fatalf("Glob error: %v", err)
	}
	if len(matches) != 1 || matches[0] != "assets/models/star.obj" {
		t.Errorf("Glob matches = %v", matches)
	}

	if !Exists("data/starfield.yaml") {
		t.Error("Exists(data/starfield.yaml) = false")
	}
}
