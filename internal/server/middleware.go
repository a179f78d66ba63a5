package server

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"todoportal/internal/domain/errors"

	"github.com/gin-gonic/gin"
)

// Responses shorter than this go out uncompressed.
const minCompressSize = 1024

var compressibleTypes = []string{
	"application/json",
	"application/xml",
	"text/plain",
	"text/html",
	"text/css",
	"text/javascript",
}

type gzipBody struct {
	*gzip.Reader
	raw io.ReadCloser
}

func (b *gzipBody) Close() error {
	zerr := b.Reader.Close()
	if err := b.raw.Close(); err != nil {
		return err
	}
	return zerr
}

// GzipRequestDecompress unpacks request bodies sent with
// Content-Encoding: gzip before the handlers bind them.
func GzipRequestDecompress() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !headerHas(ctx.GetHeader("Content-Encoding"), "gzip") {
			ctx.Next()
			return
		}
		zr, err := gzip.NewReader(ctx.Request.Body)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errors.ErrInvalidGzipRequest.Error()})
			return
		}
		ctx.Request.Body = &gzipBody{Reader: zr, raw: ctx.Request.Body}
		ctx.Request.Header.Del("Content-Encoding")
		ctx.Request.Header.Del("Content-Length")
		ctx.Request.ContentLength = -1
		ctx.Next()
	}
}

// gzipWriter holds the first minCompressSize bytes back and then decides
// whether the response is worth compressing.
type gzipWriter struct {
	gin.ResponseWriter
	buf     bytes.Buffer
	zw      *gzip.Writer
	decided bool
}

func (w *gzipWriter) Write(p []byte) (int, error) {
	switch {
	case w.zw != nil:
		n, err := w.zw.Write(p)
		if err != nil {
			return n, errors.ErrGzipCompressionFailed
		}
		return n, nil
	case w.decided:
		return w.ResponseWriter.Write(p)
	}

	w.buf.Write(p)
	if w.buf.Len() >= minCompressSize {
		if err := w.decide(); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

func (w *gzipWriter) WriteString(s string) (int, error) { return w.Write([]byte(s)) }

func (w *gzipWriter) Flush() {
	_ = w.decide()
	if w.zw != nil {
		_ = w.zw.Flush()
	}
	w.ResponseWriter.Flush()
}

func (w *gzipWriter) decide() error {
	if w.decided {
		return nil
	}
	w.decided = true

	pending := w.buf.Bytes()
	defer w.buf.Reset()

	if len(pending) >= minCompressSize && w.compressible() {
		h := w.Header()
		h.Del("Content-Length")
		h.Set("Content-Encoding", "gzip")
		addVary(h)
		w.zw = gzip.NewWriter(w.ResponseWriter)
		if _, err := w.zw.Write(pending); err != nil {
			return errors.ErrGzipCompressionFailed
		}
		return nil
	}
	if len(pending) == 0 {
		return nil
	}
	_, err := w.ResponseWriter.Write(pending)
	return err
}

func (w *gzipWriter) compressible() bool {
	switch w.Status() {
	case http.StatusNoContent, http.StatusNotModified, http.StatusPartialContent:
		return false
	}
	if w.Header().Get("Content-Encoding") != "" {
		return false
	}
	ct := strings.ToLower(w.Header().Get("Content-Type"))
	for _, prefix := range compressibleTypes {
		if strings.HasPrefix(ct, prefix) {
			return true
		}
	}
	return false
}

func (w *gzipWriter) finish() error {
	if err := w.decide(); err != nil {
		return err
	}
	if w.zw != nil {
		if err := w.zw.Close(); err != nil {
			return errors.ErrGzipCompressionFailed
		}
	}
	return nil
}

// GzipResponseCompress compresses large text responses for clients that
// accept gzip.
func GzipResponseCompress() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method == http.MethodHead || !headerHas(ctx.GetHeader("Accept-Encoding"), "gzip") {
			ctx.Next()
			return
		}
		addVary(ctx.Writer.Header())

		gw := &gzipWriter{ResponseWriter: ctx.Writer}
		ctx.Writer = gw
		ctx.Next()

		if err := gw.finish(); err != nil {
			_ = ctx.Error(err)
		}
	}
}

func headerHas(value, token string) bool {
	return strings.Contains(strings.ToLower(value), token)
}

func addVary(h http.Header) {
	vary := h.Get("Vary")
	switch {
	case vary == "":
		h.Set("Vary", "Accept-Encoding")
	case !strings.Contains(vary, "Accept-Encoding"):
		h.Set("Vary", vary+", Accept-Encoding")
	}
}
