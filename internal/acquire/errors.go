package acquire

import (
	"errors"
	"fmt"
)

// ErrUnsupportedURL rejects input before any network activity. Only bilibili
// and YouTube links matching the allow-listed path shapes are accepted.
var ErrUnsupportedURL = errors.New(
	"unsupported URL: only bilibili.com and youtube.com/youtu.be links are supported")

// FetchError wraps a failure of the underlying download capability with a
// remediation hint.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf(
		"download failed: %v. Check network connectivity, the ffmpeg installation and that the link is still valid",
		e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
