package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFile struct {
	name        string
	contentType string
	data        []byte
}

func fileHeaders(t *testing.T, files ...testFile) []*multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="images"; filename="`+f.name+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["images"]
}

type flakyUploader struct {
	failOn string
	keys   []string
}

func (u *flakyUploader) Upload(_ context.Context, key, _ string, body io.Reader) (string, error) {
	data, _ := io.ReadAll(body)
	if strings.Contains(string(data), u.failOn) {
		return "", errors.New("bucket unavailable")
	}
	u.keys = append(u.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func TestUploadImagesFallsBackToPlaceholder(t *testing.T) {
	files := fileHeaders(t,
		testFile{"front.jpg", "image/jpeg", []byte("front")},
		testFile{"side.png", "image/png", []byte("BROKEN")},
		testFile{"notes.pdf", "application/pdf", []byte("%PDF")},
		testFile{"back.jpg", "image/jpeg", []byte("back")},
	)
	up := &flakyUploader{failOn: "BROKEN"}

	results := UploadImages(context.Background(), up, files, "equipment/u1")
	require.Len(t, results, 4)

	urls := URLs(results)
	assert.True(t, strings.HasPrefix(urls[0], "https://cdn.example.com/equipment/u1/"))
	assert.True(t, strings.HasSuffix(urls[0], ".jpg"))
	assert.Equal(t, Placeholder, urls[1])
	assert.Equal(t, Placeholder, urls[2])
	assert.True(t, strings.HasPrefix(urls[3], "https://cdn.example.com/"))

	assert.False(t, results[0].Failed())
	assert.True(t, results[1].Failed())
	assert.True(t, results[2].Failed())
	assert.Len(t, up.keys, 2)
}

func TestUploadImagesEmpty(t *testing.T) {
	assert.Empty(t, UploadImages(context.Background(), &flakyUploader{}, nil, "x"))
}

func TestInlineUploader(t *testing.T) {
	up := InlineUploader{MaxBytes: 8}

	url, err := up.Upload(context.Background(), "k", "image/png", strings.NewReader("pngdata"))
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("pngdata")), url)

	_, err = up.Upload(context.Background(), "k", "image/png", strings.NewReader("way too large"))
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	up, err := New(context.Background(), "inline", "", 1024)
	require.NoError(t, err)
	assert.IsType(t, InlineUploader{}, up)

	_, err = New(context.Background(), "ftp", "", 0)
	assert.Error(t, err)
}
