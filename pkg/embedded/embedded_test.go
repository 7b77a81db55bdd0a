package embedded

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/engine.yaml":  {Data: []byte("frameRate: 60\n")},
		"data/effects.yaml": {Data: []byte("effects: []\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	Reset()
	defer Reset()

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	// nil 文件系统视为未初始化
	Init(nil)
	if IsInitialized() {
		t.Error("Init(nil) should leave the package uninitialized")
	}
}

func TestNotInitialized(t *testing.T) {
	Reset()

	if _, err := Open("data/engine.yaml"); err == nil {
		t.Error("Expected error when calling Open() before Init()")
	}
	if _, err := ReadFile("data/engine.yaml"); err == nil {
		t.Error("Expected error when calling ReadFile() before Init()")
	}
	if Exists("data/engine.yaml") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Reset()

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"普通路径", "data/engine.yaml", "frameRate: 60\n", false},
		{"./ 前缀", "./data/engine.yaml", "frameRate: 60\n", false},
		{"未知前缀", "assets/x.png", "", true},
		{"不存在", "data/missing.yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestExists(t *testing.T) {
	Init(testFS())
	defer Reset()

	if !Exists("data/effects.yaml") {
		t.Error("data/effects.yaml should exist")
	}
	if Exists("data/nope.yaml") {
		t.Error("data/nope.yaml should not exist")
	}
}

func TestReadFileOrDisk(t *testing.T) {
	Reset()
	defer Reset()

	dir := t.TempDir()
	path := filepath.Join(dir, "local.yaml")
	if err := os.WriteFile(path, []byte("disk"), 0o644); err != nil {
		t.Fatal(err)
	}

	// 未初始化时走磁盘
	got, err := ReadFileOrDisk(path)
	if err != nil || string(got) != "disk" {
		t.Fatalf("ReadFileOrDisk(disk) = %q, %v", got, err)
	}

	// 初始化后嵌入文件优先
	Init(testFS())
	got, err = ReadFileOrDisk("data/engine.yaml")
	if err != nil || string(got) != "frameRate: 60\n" {
		t.Fatalf("ReadFileOrDisk(embedded) = %q, %v", got, err)
	}

	// 嵌入文件系统中没有的路径仍从磁盘读取
	got, err = ReadFileOrDisk(path)
	if err != nil || string(got) != "disk" {
		t.Fatalf("ReadFileOrDisk(fallback) = %q, %v", got, err)
	}
}
