package cloudwriter

import (
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/chrisdamba/heatwavesim/internal/models"
)

type fakeS3 struct {
	bucket, key string
	body        []byte
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = b
	return &s3.PutObjectOutput{}, nil
}

func TestS3WriterUploadsOnClose(t *testing.T) {
	client := &fakeS3{}
	factory := NewS3WriterFactoryFromClient(context.Background(), client)

	w, err := factory.NewWriter("bucket", "runs/archive.json")
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if _, err := w.Write([]byte("hello ")); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("world")); err != nil {
		t.Fatal(err)
	}
	if client.key != "" {
		t.Fatal("uploaded before Close")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if client.bucket != "bucket" || client.key != "runs/archive.json" || string(client.body) != "hello world" {
		t.Fatalf("uploaded %s/%s = %q", client.bucket, client.key, client.body)
	}
}

func TestS3WriterDiscardSkipsUpload(t *testing.T) {
	client := &fakeS3{}
	w, err := NewS3WriterFactoryFromClient(context.Background(), client).NewWriter("bucket", "partial.json")
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if _, err := w.Write([]byte("{")); err != nil {
		t.Fatal(err)
	}
	w.Discard()
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if client.key != "" {
		t.Fatalf("discarded writer uploaded %s", client.key)
	}
}

func TestNewFactoryRejectsUnknownProvider(t *testing.T) {
	_, err := NewFactory(context.Background(), models.CloudStorageConfig{Provider: "gcs", BucketName: "b"})
	if err == nil {
		t.Fatal("expected error for unsupported provider")
	}
	_, err = NewFactory(context.Background(), models.CloudStorageConfig{Provider: "s3"})
	if err == nil {
		t.Fatal("expected error for missing bucket")
	}
}
