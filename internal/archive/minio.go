package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"apmatch/internal/config"
	"apmatch/internal/model"
)

// minioArchive implements BriefArchive on an S3-compatible backend
// (MinIO, AWS S3, etc.). Safe for concurrent use.
type minioArchive struct {
	client *minio.Client
	bucket string
}

// NewMinIO creates a brief archive backed by MinIO. It validates
// connectivity and ensures the bucket exists (creates it if missing).
func NewMinIO(cfg config.MinIOConfig) (BriefArchive, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	a := &minioArchive{client: cli, bucket: cfg.Bucket}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return a, nil
}

func briefKey(invoiceNumber string) string {
	return "briefs/" + invoiceNumber + ".json"
}

// Save writes the brief as a JSON object under briefs/<invoice_number>.json.
func (a *minioArchive) Save(ctx context.Context, b model.ResolutionBrief) (string, error) {
	body, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("marshal brief: %w", err)
	}
	key := briefKey(b.InvoiceNumber)

	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
		UserMetadata: map[string]string{
			"invoice-number":     b.InvoiceNumber,
			"recommended-action": string(b.RecommendedAction),
		},
	})
	if err != nil {
		return "", fmt.Errorf("archive brief: %w", err)
	}
	return key, nil
}

// Load retrieves and decodes the archived brief for an invoice number.
func (a *minioArchive) Load(ctx context.Context, invoiceNumber string) (model.ResolutionBrief, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, briefKey(invoiceNumber), minio.GetObjectOptions{})
	if err != nil {
		return model.ResolutionBrief{}, fmt.Errorf("fetch brief: %w", err)
	}
	defer obj.Close()

	var b model.ResolutionBrief
	if err := json.NewDecoder(obj).Decode(&b); err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return model.ResolutionBrief{}, ErrBriefNotFound
		}
		return model.ResolutionBrief{}, fmt.Errorf("decode brief: %w", err)
	}
	return b, nil
}
