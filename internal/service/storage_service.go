package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"hangul_edu_backend/internal/config"
	"hangul_edu_backend/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider abstracts where uploaded images live.
type StorageProvider interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, filename string) error
	GetURL(filename string) string
}

// LocalStorageProvider keeps files under a directory served at /uploads.
type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.Config.LocalPath, filename)
	dir := filepath.Dir(dst)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err = io.Copy(out, reader); err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *LocalStorageProvider) Delete(ctx context.Context, filename string) error {
	return os.Remove(filepath.Join(p.Config.LocalPath, filename))
}

func (p *LocalStorageProvider) GetURL(filename string) string {
	if p.Config.PublicBaseURL != "" {
		return strings.TrimRight(p.Config.PublicBaseURL, "/") + "/uploads/" + filename
	}
	return "/uploads/" + filename
}

type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, filename, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *MinioStorageProvider) Delete(ctx context.Context, filename string) error {
	return p.Client.RemoveObject(ctx, p.Config.MinioBucket, filename, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) GetURL(filename string) string {
	scheme := "http"
	if p.Config.MinioUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, p.Config.MinioEndpoint, p.Config.MinioBucket, filename)
}

type StorageService struct {
	Provider StorageProvider
}

func NewStorageService(cfg *config.Config) *StorageService {
	var provider StorageProvider
	if cfg.Storage.Type == "minio" {
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Warn("minio unavailable, falling back to local storage", zap.Error(err))
		} else {
			provider = p
		}
	}
	if provider == nil {
		provider = &LocalStorageProvider{Config: &cfg.Storage}
	}
	return &StorageService{Provider: provider}
}

func (s *StorageService) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	return s.Provider.Upload(ctx, filename, reader, size, contentType)
}

func (s *StorageService) Delete(ctx context.Context, filename string) error {
	return s.Provider.Delete(ctx, filename)
}

func (s *StorageService) GetURL(filename string) string {
	return s.Provider.GetURL(filename)
}
