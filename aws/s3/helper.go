package s3

import (
	"fmt"
	"net/url"
	"strings"
)

// AwsS3Bucket identifies one dataset location in object storage.
type AwsS3Bucket struct {
	Name   string `errorTxt:"bucket name" mandatory:"yes"`
	Prefix string `errorTxt:"bucket prefix"`
	Region string `errorTxt:"bucket region"`
	Dsn    string
}

// ParseDSN expects uri to be of the form [s3://]<bucket>[/<prefix>]
// It returns an AwsS3Bucket populated with the components of uri and the
// supplied region. The region may be empty, in which case the SDK resolves it
// from the environment.
func ParseDSN(uri string, region string) (retval AwsS3Bucket, err error) {
	expectedScheme := "s3"
	s3url, err := url.Parse(uri)
	if err != nil {
		return retval, fmt.Errorf("error parsing S3 URL: %v", err)
	}
	if s3url.Scheme != "" && s3url.Scheme != expectedScheme {
		return retval, fmt.Errorf("expected S3 URL scheme %q but got %q", expectedScheme, s3url.Scheme)
	}
	retval.Name = s3url.Host
	if retval.Name == "" {
		return retval, fmt.Errorf("DSN failed to parse bucket name")
	}
	retval.Prefix = strings.Trim(s3url.Path, "/")
	retval.Region = region
	retval.Dsn = uri
	return
}
