package s3

import (
	"testing"
)

func TestParseDSN(t *testing.T) {
	b, err := ParseDSN("s3://udacity-dend/log_data", "us-west-2")
	if err != nil {
		t.Fatal("unexpected error: ", err)
	}
	if b.Name != "udacity-dend" {
		t.Fatal("unexpected bucket name: ", b.Name)
	}
	if b.Prefix != "log_data" {
		t.Fatal("unexpected prefix: ", b.Prefix)
	}
	if b.Region != "us-west-2" {
		t.Fatal("unexpected region: ", b.Region)
	}
}

func TestParseDSNNoScheme(t *testing.T) {
	_, err := ParseDSN("http://udacity-dend/song_data", "us-west-2")
	if err == nil {
		t.Fatal("expected an error for a non-s3 scheme")
	}
}

func TestParseDSNDeepPrefix(t *testing.T) {
	b, err := ParseDSN("s3://udacity-dend/song_data/A/A/", "")
	if err != nil {
		t.Fatal("unexpected error: ", err)
	}
	if b.Prefix != "song_data/A/A" {
		t.Fatal("unexpected prefix: ", b.Prefix)
	}
}

func TestParseDSNMissingBucket(t *testing.T) {
	_, err := ParseDSN("s3:///log_data", "us-west-2")
	if err == nil {
		t.Fatal("expected an error for a missing bucket name")
	}
}
