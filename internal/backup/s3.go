// Package backup copies state snapshots to and from an S3-compatible bucket.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/codegenome/internal/config"
	"github.com/abhisek/codegenome/internal/store"
)

var (
	ErrNoBucket   = errors.New("backup bucket is required")
	ErrNoSnapshot = errors.New("no snapshot to back up")
)

// S3API is the subset of the S3 client the service calls.
type S3API interface {
	manager.UploadAPIClient
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Object describes one stored backup.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// file is the JSON document written per backup.
type file struct {
	Sequence  int64              `json:"sequence"`
	Timestamp time.Time          `json:"timestamp"`
	Data      store.SnapshotData `json:"data"`
}

// Service pushes, lists and pulls snapshot backups.
type Service struct {
	client   S3API
	uploader *manager.Uploader
	bucket   string
	prefix   string
	snaps    store.SnapshotRepo
	now      func() time.Time
}

// New creates a Service over an existing client.
func New(client S3API, bucket, prefix string, snaps store.SnapshotRepo) (*Service, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, ErrNoBucket
	}
	return &Service{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		prefix:   strings.Trim(prefix, "/"),
		snaps:    snaps,
		now:      time.Now,
	}, nil
}

// NewFromConfig loads AWS credentials the standard way and builds the client.
// A custom endpoint switches to path-style addressing for S3-compatible stores.
func NewFromConfig(ctx context.Context, cfg config.BackupConfig, snaps store.SnapshotRepo) (*Service, error) {
	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Region),
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.Profile))
	}
	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	logrus.Infof("using s3 bucket %s (region %s)", cfg.Bucket, cfg.Region)
	return New(client, cfg.Bucket, cfg.KeyPrefix, snaps)
}

func (s *Service) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

// Push uploads the latest local snapshot and returns its object key.
func (s *Service) Push(ctx context.Context) (string, error) {
	snap, err := s.snaps.Latest(ctx)
	if err != nil {
		return "", err
	}
	if snap == nil {
		return "", ErrNoSnapshot
	}

	body, err := json.Marshal(file{Sequence: snap.Sequence, Timestamp: snap.Timestamp, Data: snap.Data})
	if err != nil {
		return "", fmt.Errorf("marshal backup: %w", err)
	}

	key := s.key(fmt.Sprintf("snapshot-%s-v%d.json", s.now().UTC().Format("20060102T150405Z"), snap.Data.Version))
	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	logrus.WithFields(logrus.Fields{"key": key, "version": snap.Data.Version}).Info("snapshot backed up")
	return key, nil
}

// List returns the stored backups, newest first.
func (s *Service) List(ctx context.Context) ([]Object, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	}
	if s.prefix != "" {
		input.Prefix = aws.String(s.prefix + "/")
	}

	var objects []Object
	for {
		output, err := s.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		for _, obj := range output.Contents {
			key := aws.ToString(obj.Key)
			if path.Ext(key) != ".json" {
				continue
			}
			o := Object{Key: key, Size: aws.ToInt64(obj.Size)}
			if obj.LastModified != nil {
				o.LastModified = *obj.LastModified
			}
			objects = append(objects, o)
		}
		if !aws.ToBool(output.IsTruncated) || output.NextContinuationToken == nil {
			break
		}
		input.ContinuationToken = output.NextContinuationToken
	}

	sort.SliceStable(objects, func(i, j int) bool {
		if !objects[i].LastModified.Equal(objects[j].LastModified) {
			return objects[i].LastModified.After(objects[j].LastModified)
		}
		return objects[i].Key > objects[j].Key
	})
	return objects, nil
}

// Pull downloads a backup and saves it as the newest local snapshot, so
// running stores adopt it on their next refresh. An empty key pulls the
// most recent backup.
func (s *Service) Pull(ctx context.Context, key string) (*store.Snapshot, error) {
	if key == "" {
		objs, err := s.List(ctx)
		if err != nil {
			return nil, err
		}
		if len(objs) == 0 {
			return nil, ErrNoSnapshot
		}
		key = objs[0].Key
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	defer out.Body.Close()

	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	var f file
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}

	latest, err := s.snaps.Latest(ctx)
	if err != nil {
		return nil, err
	}
	next := 1
	if latest != nil {
		next = latest.Data.Version + 1
	}
	f.Data.Version = next

	snap := &store.Snapshot{Sequence: int64(next), Timestamp: s.now().UTC(), Data: f.Data}
	if err := s.snaps.Save(ctx, snap); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"key": key, "version": next}).Info("snapshot restored")
	return snap, nil
}
