package api

import (
	"fmt"
	"net/http"
)

// maxBodyBytes bounds request bodies; the largest valid body is a
// message of 254 characters plus its envelope.
const maxBodyBytes = 64 << 10

// trackingWriter remembers whether a response has been started so the
// panic handler never writes a second status line.
type trackingWriter struct {
	http.ResponseWriter
	started bool
}

func (tw *trackingWriter) WriteHeader(code int) {
	tw.started = true
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *trackingWriter) Write(b []byte) (int, error) {
	tw.started = true
	return tw.ResponseWriter.Write(b)
}

func (s *SocialMediaApp) errorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tw := &trackingWriter{ResponseWriter: w}

		defer func() {
			if err := recover(); err != nil {
				var panicError error
				switch e := err.(type) {
				case error:
					panicError = e
				default:
					panicError = fmt.Errorf("%v", e)
				}
				s.log.Printf("panic: %v", panicError)
				if tw.started {
					return
				}
				errResp := NewInternalServerError(panicError)
				w.Header().Set("Connection", "close")
				s.writeJson(w, errResp.StatusCode, errResp)
			}
		}()

		if r.Body != nil {
			r.Body = http.MaxBytesReader(tw, r.Body, maxBodyBytes)
		}

		next.ServeHTTP(tw, r)
	})
}
