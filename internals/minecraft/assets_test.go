package minecraft

import (
	"path/filepath"
	"testing"
)

func TestAssetObjectPaths(t *testing.T) {
	obj := AssetObject{Hash: "abcdef0123456789abcdef0123456789abcdef01"}

	if got := obj.UnixPath(); got != "ab/abcdef0123456789abcdef0123456789abcdef01" {
		t.Fatalf("unexpected unix path %s", got)
	}
	if got := obj.Filepath(); got != filepath.Join("ab", obj.Hash) {
		t.Fatalf("unexpected file path %s", got)
	}
	want := "https://resources.download.minecraft.net/ab/abcdef0123456789abcdef0123456789abcdef01"
	if got := obj.DownloadURL(""); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if got := obj.DownloadURL("http://127.0.0.1:8080/"); got != "http://127.0.0.1:8080/ab/"+obj.Hash {
		t.Fatalf("unexpected url for custom host %s", got)
	}
}

func TestAssetObjectValid(t *testing.T) {
	tests := []struct {
		hash string
		want bool
	}{
		{"abcdef", true},
		{"ab", false},
		{"", false},
		{"../../etc", false},
	}
	for _, tt := range tests {
		obj := AssetObject{Hash: tt.hash}
		if obj.Valid() != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.hash, obj.Valid(), tt.want)
		}
	}
}
