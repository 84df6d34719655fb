package minio

import (
	"net"
	"net/http"
	"net/url"
	"strings"
)

// s3Operation names the S3 API a request calls, e.g. GET /bucket/key is
// GetObject. hostBucket is the bucket of a virtual-host style request, empty for
// path style. Requests it cannot place are named after the HTTP method.
func s3Operation(method string, u *url.URL, header http.Header, hostBucket string) (operation, bucket, key string) {
	if method == "" {
		method = http.MethodGet
	}
	if hostBucket != "" {
		bucket, key = hostBucket, strings.TrimPrefix(u.Path, "/")
	} else {
		bucket, key = splitPath(u.Path)
	}
	q := u.Query()

	switch {
	case bucket == "":
		if method == http.MethodGet {
			return "ListBuckets", "", ""
		}
	case key == "":
		switch method {
		case http.MethodGet:
			if q.Has("location") {
				return "GetBucketLocation", bucket, ""
			}
			if q.Has("uploads") {
				return "ListMultipartUploads", bucket, ""
			}
			if q.Get("list-type") == "2" {
				return "ListObjectsV2", bucket, ""
			}
			return "ListObjects", bucket, ""
		case http.MethodHead:
			return "HeadBucket", bucket, ""
		case http.MethodPut:
			return "CreateBucket", bucket, ""
		case http.MethodDelete:
			return "DeleteBucket", bucket, ""
		case http.MethodPost:
			if q.Has("delete") {
				return "DeleteObjects", bucket, ""
			}
		}
	default:
		switch method {
		case http.MethodGet:
			return "GetObject", bucket, key
		case http.MethodHead:
			return "HeadObject", bucket, key
		case http.MethodPut:
			if q.Has("uploadId") {
				return "UploadPart", bucket, key
			}
			if header.Get("X-Amz-Copy-Source") != "" {
				return "CopyObject", bucket, key
			}
			return "PutObject", bucket, key
		case http.MethodDelete:
			if q.Has("uploadId") {
				return "AbortMultipartUpload", bucket, key
			}
			return "DeleteObject", bucket, key
		case http.MethodPost:
			if q.Has("uploads") {
				return "CreateMultipartUpload", bucket, key
			}
			if q.Has("uploadId") {
				return "CompleteMultipartUpload", bucket, key
			}
		}
	}
	return strings.ToUpper(method[:1]) + strings.ToLower(method[1:]), bucket, key
}

func splitPath(p string) (bucket, key string) {
	p = strings.TrimPrefix(p, "/")
	bucket, key, _ = strings.Cut(p, "/")
	return bucket, key
}

// virtualHostBucket returns the bucket label of a virtual-host style host such as
// invoices.s3.eu-west-1.amazonaws.com or invoices.minio.local when endpoint is
// minio.local. It returns "" for path style hosts.
func virtualHostBucket(host, endpoint string) string {
	host = strings.ToLower(host)
	if endpoint != "" {
		endpointHost := strings.ToLower(endpoint)
		if h, _, err := net.SplitHostPort(endpointHost); err == nil {
			endpointHost = h
		}
		if bucket, ok := strings.CutSuffix(host, "."+endpointHost); ok && bucket != "" {
			return bucket
		}
	}
	for _, marker := range []string{".s3.", ".s3-"} {
		if i := strings.Index(host, marker); i > 0 && strings.HasSuffix(host, ".amazonaws.com") {
			return host[:i]
		}
	}
	return ""
}
