package blobstore

import (
	"fmt"
	"net/url"
	"strings"
)

// Scheme identifies the kind of store a URI refers to.
type Scheme string

const (
	SchemeStdio Scheme = "stdio"
	SchemeFile  Scheme = "file"
	SchemeS3    Scheme = "s3"
	SchemeMinIO Scheme = "minio"
)

// URI is a parsed source or destination argument.
type URI struct {
	Scheme Scheme
	Bucket string // s3 and minio only
	Key    string // object key or file path
}

// ParseURI parses "-", plain paths, file://, s3:// and minio:// URIs.
func ParseURI(raw string) (URI, error) {
	if raw == "" {
		return URI{}, fmt.Errorf("blobstore: empty location")
	}
	if raw == "-" {
		return URI{Scheme: SchemeStdio}, nil
	}

	i := strings.Index(raw, "://")
	if i < 0 {
		return URI{Scheme: SchemeFile, Key: raw}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return URI{}, fmt.Errorf("blobstore: parse %q: %w", raw, err)
	}

	switch Scheme(strings.ToLower(u.Scheme)) {
	case SchemeFile:
		path := u.Path
		if u.Host != "" {
			// file://relative/path
			path = u.Host + u.Path
		}
		if path == "" {
			return URI{}, fmt.Errorf("blobstore: %q has no path", raw)
		}
		return URI{Scheme: SchemeFile, Key: path}, nil
	case SchemeS3, SchemeMinIO:
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return URI{}, fmt.Errorf("blobstore: %q must look like %s://bucket/key", raw, u.Scheme)
		}
		return URI{Scheme: Scheme(strings.ToLower(u.Scheme)), Bucket: u.Host, Key: key}, nil
	default:
		return URI{}, fmt.Errorf("blobstore: unsupported scheme %q", u.Scheme)
	}
}

func (u URI) String() string {
	switch u.Scheme {
	case SchemeStdio:
		return "-"
	case SchemeFile:
		return u.Key
	default:
		return string(u.Scheme) + "://" + u.Bucket + "/" + u.Key
	}
}
