package selection

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		paths     []string
		want      []string
		wantError error
	}{
		{
			name:      "empty input",
			paths:     nil,
			wantError: ErrNoInput,
		},
		{
			name:      "no images",
			paths:     []string{"/x/notes.txt", "/x/archive.zip", "/x/noext"},
			wantError: ErrEmptySelection,
		},
		{
			name:  "filters non-images",
			paths: []string{"/x/a.jpg", "/x/readme.md", "/x/b.png"},
			want:  []string{"/x/a.jpg", "/x/b.png"},
		},
		{
			name:  "extension match is case-insensitive",
			paths: []string{"/x/a.JPG", "/x/b.Png", "/x/c.TIFF", "/x/d.WebP"},
			want:  []string{"/x/a.JPG", "/x/b.Png", "/x/c.TIFF", "/x/d.WebP"},
		},
		{
			name:  "deduplicates exact paths",
			paths: []string{"/x/a.jpg", "/x/a.jpg", "/x/b.gif"},
			want:  []string{"/x/a.jpg", "/x/b.gif"},
		},
		{
			name:  "deduplicates lexical aliases",
			paths: []string{"/x/a.jpg", "/x/./a.jpg", "/x/y/../a.jpg", "/x//a.jpg"},
			want:  []string{"/x/a.jpg"},
		},
		{
			name:  "dedupe is exact, not case-folded",
			paths: []string{"/x/a.jpg", "/x/A.jpg"},
			want:  []string{"/x/A.jpg", "/x/a.jpg"},
		},
		{
			name:  "sorts by full path ordinal",
			paths: []string{"/y/a.jpg", "/x/c.jpg", "/x/B.jpg", "/x/a.jpg"},
			want:  []string{"/x/B.jpg", "/x/a.jpg", "/x/c.jpg", "/y/a.jpg"},
		},
		{
			name:  "all supported extensions",
			paths: []string{"/p/1.jpg", "/p/2.jpeg", "/p/3.png", "/p/4.gif", "/p/5.bmp", "/p/6.webp", "/p/7.tiff", "/p/8.tif"},
			want:  []string{"/p/1.jpg", "/p/2.jpeg", "/p/3.png", "/p/4.gif", "/p/5.bmp", "/p/6.webp", "/p/7.tiff", "/p/8.tif"},
		},
		{
			name:  "extension must be the final suffix",
			paths: []string{"/x/photo.jpg.bak", "/x/photo.jpg"},
			want:  []string{"/x/photo.jpg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws, err := Validate(tt.paths)
			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Fatalf("Validate() error = %v, want %v", err, tt.wantError)
				}
				if !ws.IsEmpty() {
					t.Errorf("expected empty working set on error, got %d files", ws.Len())
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			if got := ws.Paths(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	in := []string{"/x/c.jpg", "/x/a.jpg"}
	if _, err := Validate(in); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if in[0] != "/x/c.jpg" || in[1] != "/x/a.jpg" {
		t.Errorf("input slice was reordered: %v", in)
	}
}

func TestNewImageFile(t *testing.T) {
	f := NewImageFile("/x/holiday.PNG")
	if f.Name != "holiday.PNG" {
		t.Errorf("Name = %q, want %q", f.Name, "holiday.PNG")
	}
	if f.Ext != ".PNG" {
		t.Errorf("Ext = %q, want %q", f.Ext, ".PNG")
	}
}

func TestValidate_RelativeAliases(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	abs := filepath.Join(wd, "a.jpg")

	ws, err := Validate([]string{"a.jpg", "./a.jpg", abs, "sub/../a.jpg"})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	want := []string{abs}
	if !reflect.DeepEqual(ws.Paths(), want) {
		t.Errorf("Validate() paths = %v, want %v", ws.Paths(), want)
	}
	if f := ws.Files()[0]; f.Path != abs || f.Name != "a.jpg" {
		t.Errorf("ImageFile = %+v, want Path %q Name %q", f, abs, "a.jpg")
	}
}

func TestValidate_SortsResolvedPaths(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}

	ws, err := Validate([]string{"z.jpg", filepath.Join(wd, "b.jpg"), "a.jpg"})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	want := []string{filepath.Join(wd, "a.jpg"), filepath.Join(wd, "b.jpg"), filepath.Join(wd, "z.jpg")}
	if !reflect.DeepEqual(ws.Paths(), want) {
		t.Errorf("Validate() paths = %v, want %v", ws.Paths(), want)
	}
}

func TestWorkingSet_Without(t *testing.T) {
	ws, err := Validate([]string{"/x/a.jpg", "/x/b.PNG", "/x/c.jpg"})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	t.Run("removes listed paths", func(t *testing.T) {
		got := ws.Without("/x/b.PNG")
		want := []string{"/x/a.jpg", "/x/c.jpg"}
		if !reflect.DeepEqual(got.Paths(), want) {
			t.Errorf("Without() = %v, want %v", got.Paths(), want)
		}
	})

	t.Run("original is unchanged", func(t *testing.T) {
		_ = ws.Without("/x/a.jpg", "/x/c.jpg")
		if ws.Len() != 3 {
			t.Errorf("original working set changed: %v", ws.Paths())
		}
	})

	t.Run("matches unclean aliases", func(t *testing.T) {
		got := ws.Without("/x/./b.PNG")
		if got.Len() != 2 {
			t.Errorf("Without(alias) Len = %d, want 2", got.Len())
		}
	})

	t.Run("unknown paths are ignored", func(t *testing.T) {
		got := ws.Without("/nope.jpg")
		if got.Len() != 3 {
			t.Errorf("Without(unknown) Len = %d, want 3", got.Len())
		}
	})

	t.Run("removing everything yields empty set", func(t *testing.T) {
		got := ws.Without(ws.Paths()...)
		if !got.IsEmpty() {
			t.Errorf("expected empty set, got %v", got.Paths())
		}
	})
}

func TestWorkingSet_FilesIsCopy(t *testing.T) {
	ws, err := Validate([]string{"/x/a.jpg"})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	files := ws.Files()
	files[0].Path = "/tampered.jpg"
	if ws.Paths()[0] != "/x/a.jpg" {
		t.Error("Files() must return a copy")
	}
}
