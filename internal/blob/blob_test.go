package blob_test

import (
	"errors"
	"strings"
	"testing"

	"clinic-management-api/internal/blob"
)

func TestCreateOpenRevoke(t *testing.T) {
	r := blob.NewRegistry(nil, 0)

	url, err := r.Create("xray.png", "image/png", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(url, blob.URLPrefix) {
		t.Fatalf("url %q lacks prefix", url)
	}

	name, ct, data, err := r.Open(url)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if name != "xray.png" || ct != "image/png" || len(data) != 3 {
		t.Fatalf("blob mismatch: %q %q %v", name, ct, data)
	}

	r.Revoke(url)
	if _, _, _, err := r.Open(url); !errors.Is(err, blob.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound after revoke", err)
	}
	if r.Len() != 0 {
		t.Fatalf("registry leaked %d blobs", r.Len())
	}

	// revoking again is a no-op
	r.Revoke(url)
}

func TestRevokeAll(t *testing.T) {
	r := blob.NewRegistry(nil, 0)
	u1, err := r.Create("a.pdf", "", []byte("x"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := r.Create("b.png", "", []byte("y")); err != nil {
		t.Fatalf("create: %v", err)
	}

	r.RevokeAll()
	if r.Len() != 0 {
		t.Fatalf("registry still holds %d blobs", r.Len())
	}
	if _, _, _, err := r.Open(u1); !errors.Is(err, blob.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound after RevokeAll", err)
	}

	// the registry still accepts new blobs afterwards
	if _, err := r.Create("c.pdf", "", []byte("z")); err != nil {
		t.Fatalf("create after RevokeAll: %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	r := blob.NewRegistry([]string{".pdf"}, 10)

	tests := []struct {
		name    string
		file    string
		data    []byte
		wantErr error
	}{
		{"bad extension", "virus.exe", []byte("x"), blob.ErrBadType},
		{"case-insensitive extension", "SCAN.PDF", []byte("x"), nil},
		{"too large", "big.pdf", make([]byte, 11), blob.ErrTooLarge},
		{"empty", "empty.pdf", nil, blob.ErrEmptyUpload},
		{"no extension", "README", []byte("x"), blob.ErrBadType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Create(tt.file, "", tt.data)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultAllowList(t *testing.T) {
	r := blob.NewRegistry(nil, 0)
	for _, name := range []string{"a.pdf", "b.jpg", "c.jpeg", "d.png", "e.doc", "f.docx"} {
		if _, err := r.Create(name, "", []byte("x")); err != nil {
			t.Errorf("%s rejected: %v", name, err)
		}
	}
	if _, err := r.Create("g.gif", "", []byte("x")); err == nil {
		t.Error("gif should be rejected by the default allow-list")
	}
}
