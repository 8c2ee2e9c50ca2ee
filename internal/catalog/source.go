package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/tripcart/internal/config"
	"github.com/tripcart/internal/constants"
	"github.com/tripcart/internal/models"
)

// Source 商品目录来源
type Source interface {
	Name() string
	Fetch(ctx context.Context) (models.CatalogDocument, error)
}

// FileSource 本地文件来源
type FileSource struct {
	Path string
}

// Name 来源名称
func (s FileSource) Name() string {
	return constants.CatalogSourceFile
}

// Fetch 读取本地目录文件
func (s FileSource) Fetch(ctx context.Context) (models.CatalogDocument, error) {
	if err := ctx.Err(); err != nil {
		return models.CatalogDocument{}, err
	}
	file, err := os.Open(s.Path)
	if err != nil {
		return models.CatalogDocument{}, fmt.Errorf("open catalog file: %w", err)
	}
	defer file.Close()
	return Decode(file)
}

// HTTPSource 远程 HTTP 来源
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource 创建带超时的 HTTP 来源
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		URL:    strings.TrimSpace(url),
		Client: &http.Client{Timeout: timeout},
	}
}

// Name 来源名称
func (s *HTTPSource) Name() string {
	return constants.CatalogSourceHTTP
}

// Fetch 拉取远程目录
func (s *HTTPSource) Fetch(ctx context.Context) (models.CatalogDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return models.CatalogDocument{}, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return models.CatalogDocument{}, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return models.CatalogDocument{}, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}
	return Decode(resp.Body)
}

// NewSource 按配置创建来源
func NewSource(cfg config.CatalogConfig) (Source, error) {
	switch cfg.Source {
	case "", constants.CatalogSourceFile:
		return FileSource{Path: cfg.Path}, nil
	case constants.CatalogSourceHTTP:
		return NewHTTPSource(cfg.URL, cfg.Timeout()), nil
	default:
		return nil, fmt.Errorf("unsupported catalog source: %s", cfg.Source)
	}
}
