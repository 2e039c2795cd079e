package storage

import (
	"context"
	"os"
	"strings"
	"testing"
)

func TestR2ConfigEnabled(t *testing.T) {
	if (R2Config{}).Enabled() {
		t.Fatalf("empty config should be disabled")
	}
	if !(R2Config{Endpoint: "https://r2.example.com", Bucket: "receipts"}).Enabled() {
		t.Fatalf("endpoint and bucket should be enough")
	}

	if _, err := NewR2Client(context.Background(), R2Config{Bucket: "receipts"}); err == nil {
		t.Fatalf("expected error without endpoint")
	}
}

func TestObjectURL(t *testing.T) {
	got := ObjectURL("https://r2.example.com/", "receipts", "receipts/2025/03/x.json")
	if got != "https://r2.example.com/receipts/receipts/2025/03/x.json" {
		t.Fatalf("unexpected url %s", got)
	}
}

func TestUploadIntegration(t *testing.T) {
	cfg := R2Config{
		Endpoint:  os.Getenv("R2_ENDPOINT"),
		AccessKey: os.Getenv("R2_ACCESS_KEY"),
		SecretKey: os.Getenv("R2_SECRET_KEY"),
		Bucket:    os.Getenv("R2_BUCKET_NAME"),
	}
	if !cfg.Enabled() {
		t.Skip("R2_ENDPOINT / R2_BUCKET_NAME not set, skipping integration test")
	}

	client, err := NewR2Client(context.Background(), cfg)
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	url, err := client.Upload(context.Background(), "receipts/test/ping.json", strings.NewReader(`{"ok":true}`), "application/json")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasSuffix(url, "receipts/test/ping.json") {
		t.Fatalf("unexpected url %s", url)
	}
}
