package api

import (
	"crypto/rand"
	"encoding/base64"
	"os"
	"sync"
	"time"

	"nexus/internal/report"
)

type exportDownload struct {
	filePath  string
	format    report.Format
	expiresAt time.Time
}

// exportDownloadStore 预生成导出文件的一次性下载登记
type exportDownloadStore struct {
	mu    sync.Mutex
	items map[string]exportDownload
}

func newExportDownloadStore() *exportDownloadStore {
	return &exportDownloadStore{
		items: make(map[string]exportDownload),
	}
}

func (s *exportDownloadStore) put(filePath string, format report.Format, now time.Time, ttl time.Duration) (token string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(now)

	token = newRandomToken(24)
	expiresAt = now.Add(ttl)
	s.items[token] = exportDownload{
		filePath:  filePath,
		format:    format,
		expiresAt: expiresAt,
	}
	return token, expiresAt
}

// take 取出并注销下载项，过期或不存在时返回 false
func (s *exportDownloadStore) take(token string, now time.Time) (exportDownload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(now)

	v, ok := s.items[token]
	if !ok {
		return exportDownload{}, false
	}
	delete(s.items, token)
	return v, true
}

func (s *exportDownloadStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// purgeExpiredLocked 删除过期项及其临时文件
func (s *exportDownloadStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			_ = os.Remove(v.filePath)
			delete(s.items, k)
		}
	}
}

// purgeAll 删除全部登记项及其临时文件
func (s *exportDownloadStore) purgeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range s.items {
		_ = os.Remove(v.filePath)
		delete(s.items, k)
	}
}

func newRandomToken(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
