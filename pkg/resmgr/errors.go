package resmgr

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Sentinel errors for resource loading.
var (
	ErrInvalidConfig = errors.New("resmgr: invalid configuration")
	ErrNotFound      = errors.New("resmgr: resource not found")
	ErrAccessDenied  = errors.New("resmgr: access denied")
	ErrFetchFailed   = errors.New("resmgr: fetch failed")
	ErrInvalidPath   = errors.New("resmgr: invalid resource path")
)

// wrapS3Error maps S3 errors onto the package sentinels. The S3 error
// is formatted with %v; only the sentinel is wrapped.
func wrapS3Error(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
	}

	var notFound *types.NoSuchKey
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	return fmt.Errorf("%w: %v", ErrFetchFailed, err)
}
