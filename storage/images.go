// Package storage uploads listing images. A file that cannot be stored is
// replaced by a placeholder URL instead of failing the whole submission.
package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const Placeholder = "/placeholder.svg"

type Result struct {
	FileName    string
	ContentType string
	Size        int64
	URL         string
	Err         error
}

func (r Result) Failed() bool {
	return r.Err != nil
}

// UploadImages uploads each file under prefix. The returned slice always
// has one entry per file, in order.
func UploadImages(ctx context.Context, up Uploader, files []*multipart.FileHeader, prefix string) []Result {
	results := make([]Result, 0, len(files))
	for _, fh := range files {
		results = append(results, uploadOne(ctx, up, fh, prefix))
	}
	return results
}

func uploadOne(ctx context.Context, up Uploader, fh *multipart.FileHeader, prefix string) Result {
	contentType := fh.Header.Get("Content-Type")
	res := Result{FileName: fh.Filename, ContentType: contentType, Size: fh.Size, URL: Placeholder}

	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		res.Err = fmt.Errorf("%s is not an image (%s)", fh.Filename, contentType)
		return res
	}

	f, err := fh.Open()
	if err != nil {
		res.Err = fmt.Errorf("open %s: %w", fh.Filename, err)
		return res
	}
	defer f.Close()

	url, err := up.Upload(ctx, objectKey(prefix, fh.Filename), contentType, f)
	if err != nil {
		res.Err = err
		return res
	}
	res.URL = url
	return res
}

func objectKey(prefix, filename string) string {
	return fmt.Sprintf("%s/%s-%s%s", prefix, time.Now().Format("20060102150405"), uuid.NewString()[:8], strings.ToLower(filepath.Ext(filename)))
}

func URLs(results []Result) []string {
	urls := make([]string, len(results))
	for i, r := range results {
		urls[i] = r.URL
	}
	return urls
}
