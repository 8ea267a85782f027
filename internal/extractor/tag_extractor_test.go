package extractor

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bogem/id3v2/v2"
	"go.uber.org/zap"
)

// stubConfig is a simple implementation of domain.Config for testing
type stubConfig struct {
	mediaDir string
	iconDir  string
}

func (c *stubConfig) GetMediaDir() string           { return c.mediaDir }
func (c *stubConfig) GetIconDir() string            { return c.iconDir }
func (c *stubConfig) GetArtAddr() string            { return "" }
func (c *stubConfig) GetLoadTimeout() time.Duration { return time.Second }
func (c *stubConfig) GetBusName() string            { return "test" }

// writeTaggedTrack writes an ID3v2 tag followed by filler audio bytes
func writeTaggedTrack(t *testing.T, path, title, artist string, picture []byte) {
	t.Helper()

	tg := id3v2.NewEmptyTag()
	tg.SetDefaultEncoding(id3v2.EncodingUTF8)
	if title != "" {
		tg.SetTitle(title)
	}
	if artist != "" {
		tg.SetArtist(artist)
	}
	if picture != nil {
		tg.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/png",
			PictureType: id3v2.PTFrontCover,
			Description: "Front cover",
			Picture:     picture,
		})
	}

	buf := new(bytes.Buffer)
	if _, err := tg.WriteTo(buf); err != nil {
		t.Fatalf("failed to encode tag: %v", err)
	}
	buf.Write(bytes.Repeat([]byte{0xFF, 0xFB, 0x90, 0x00}, 256))

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write track: %v", err)
	}
}

// createTestPNG generates a flat PNG image for testing
func createTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("failed to create test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestTagExtractor_Extract(t *testing.T) {
	cover := createTestPNG(t, 16, 16)

	tests := []struct {
		name          string
		setup         func(t *testing.T, dir string)
		id            string
		expectedError string
		check         func(t *testing.T, dir string, title, artist string, artwork, icon []byte, source string)
	}{
		{
			name: "Success - Tagged MP3 With Artwork And Icon",
			id:   "guitar",
			setup: func(t *testing.T, dir string) {
				writeTaggedTrack(t, filepath.Join(dir, "guitar.mp3"), "Guitar Riff", "Smart&Soft", cover)
				if err := os.WriteFile(filepath.Join(dir, "ic_guitar.png"), createTestPNG(t, 512, 256), 0644); err != nil {
					t.Fatal(err)
				}
			},
			check: func(t *testing.T, dir string, title, artist string, artwork, icon []byte, source string) {
				if title != "Guitar Riff" {
					t.Errorf("Title: expected 'Guitar Riff', got '%s'", title)
				}
				if artist != "Smart&Soft" {
					t.Errorf("Artist: expected 'Smart&Soft', got '%s'", artist)
				}
				if !bytes.Equal(artwork, cover) {
					t.Errorf("Artwork: expected %d bytes, got %d", len(cover), len(artwork))
				}
				if source != filepath.Join(dir, "guitar.mp3") {
					t.Errorf("Source: unexpected %s", source)
				}
				img, _, err := image.Decode(bytes.NewReader(icon))
				if err != nil {
					t.Fatalf("icon is not a valid image: %v", err)
				}
				if b := img.Bounds(); b.Dx() != defaultIconSize || b.Dy() != defaultIconSize/2 {
					t.Errorf("icon: expected %dx%d, got %dx%d", defaultIconSize, defaultIconSize/2, b.Dx(), b.Dy())
				}
			},
		},
		{
			name: "Success - No Icon Resource",
			id:   "drums",
			setup: func(t *testing.T, dir string) {
				writeTaggedTrack(t, filepath.Join(dir, "drums.mp3"), "Drums", "", nil)
			},
			check: func(t *testing.T, dir string, title, artist string, artwork, icon []byte, source string) {
				if title != "Drums" {
					t.Errorf("Title: expected 'Drums', got '%s'", title)
				}
				if icon != nil {
					t.Errorf("expected no icon, got %d bytes", len(icon))
				}
				if artwork != nil {
					t.Errorf("expected no artwork, got %d bytes", len(artwork))
				}
			},
		},
		{
			name: "Fallback - Untagged Track Uses Identifier As Title",
			id:   "mic",
			setup: func(t *testing.T, dir string) {
				data := append([]byte("RIFF"), bytes.Repeat([]byte{0}, 300)...)
				if err := os.WriteFile(filepath.Join(dir, "mic.wav"), data, 0644); err != nil {
					t.Fatal(err)
				}
			},
			check: func(t *testing.T, dir string, title, artist string, artwork, icon []byte, source string) {
				if title != "mic" {
					t.Errorf("Title: expected fallback 'mic', got '%s'", title)
				}
				if !strings.HasSuffix(source, "mic.wav") {
					t.Errorf("Source: expected wav resource, got %s", source)
				}
			},
		},
		{
			name: "Edge Case - Corrupt Icon Is Ignored",
			id:   "violin",
			setup: func(t *testing.T, dir string) {
				writeTaggedTrack(t, filepath.Join(dir, "violin.mp3"), "Violin", "", nil)
				if err := os.WriteFile(filepath.Join(dir, "ic_violin.png"), []byte("not-an-image"), 0644); err != nil {
					t.Fatal(err)
				}
			},
			check: func(t *testing.T, dir string, title, artist string, artwork, icon []byte, source string) {
				if icon != nil {
					t.Errorf("expected corrupt icon to be dropped, got %d bytes", len(icon))
				}
			},
		},
		{
			name:          "Error - Missing Resource",
			id:            "piano",
			setup:         func(t *testing.T, dir string) {},
			expectedError: "audio resource not found",
		},
		{
			name:          "Error - Path Traversal Identifier",
			id:            "../piano",
			setup:         func(t *testing.T, dir string) {},
			expectedError: "invalid track identifier",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)

			ext := NewTagExtractor(zap.NewNop(), &stubConfig{mediaDir: dir, iconDir: dir})
			meta, err := ext.Extract(context.Background(), tt.id)

			if tt.expectedError != "" {
				if err == nil {
					t.Fatalf("expected error containing '%s', got nil", tt.expectedError)
				}
				if !strings.Contains(err.Error(), tt.expectedError) {
					t.Errorf("expected error '%s' to contain '%s'", err.Error(), tt.expectedError)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if meta.ID != tt.id {
				t.Errorf("ID: expected %s, got %s", tt.id, meta.ID)
			}
			if !meta.HasContent() {
				t.Error("expected at least one displayable field")
			}
			tt.check(t, dir, meta.Title, meta.Artist, meta.Artwork, meta.Icon, meta.Source)
		})
	}
}

func TestTagExtractor_Extract_MissingResourceIsSentinel(t *testing.T) {
	ext := NewTagExtractor(zap.NewNop(), &stubConfig{mediaDir: t.TempDir()})
	_, err := ext.Extract(context.Background(), "accordion")
	if !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("expected ErrResourceNotFound, got %v", err)
	}
}

func TestTagExtractor_Extract_ContextCancelled(t *testing.T) {
	ext := NewTagExtractor(zap.NewNop(), &stubConfig{mediaDir: t.TempDir()})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ext.Extract(ctx, "guitar"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRenderIcon(t *testing.T) {
	tests := []struct {
		name          string
		data          []byte
		size          int
		expectedError string
		expectedW     int
		expectedH     int
	}{
		{name: "Downscale Square", data: createTestPNG(t, 300, 300), size: 64, expectedW: 64, expectedH: 64},
		{name: "Small Image Kept", data: createTestPNG(t, 20, 10), size: 64, expectedW: 20, expectedH: 10},
		{name: "Default Size", data: createTestPNG(t, 400, 400), size: 0, expectedW: defaultIconSize, expectedH: defaultIconSize},
		{name: "Error - Invalid Data", data: []byte("nope"), size: 64, expectedError: "failed to decode icon"},
		{name: "Error - Empty Data", data: []byte{}, size: 64, expectedError: "failed to decode icon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := renderIcon(tt.data, IconConfig{Size: tt.size})
			if tt.expectedError != "" {
				if err == nil || !strings.Contains(err.Error(), tt.expectedError) {
					t.Fatalf("expected error containing '%s', got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			img, _, err := image.Decode(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("result is not a valid image: %v", err)
			}
			if b := img.Bounds(); b.Dx() != tt.expectedW || b.Dy() != tt.expectedH {
				t.Errorf("expected %dx%d, got %dx%d", tt.expectedW, tt.expectedH, b.Dx(), b.Dy())
			}
		})
	}
}
