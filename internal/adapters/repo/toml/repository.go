package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/camiloAVN/WebSockets-Tester/internal/domain"
	"github.com/camiloAVN/WebSockets-Tester/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	historyPathKey    = "history.path"
	historyLimitKey   = "history.limit"
	historyFileMode   = 0o600
	historyDirMode    = 0o700
	historyConfigDir  = "wst"
	historyConfigFile = "endpoints.toml"
	tempFilePattern   = ".endpoints-*.toml.tmp"

	DefaultHistoryLimit = 10
)

// Repository keeps the endpoint history in a TOML file, most recent first.
type Repository struct {
	historyPath string
	limit       int
	clock       ports.Clock
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.EndpointRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper, clock ports.Clock) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config directory: %w", err)
	}

	cfg.SetDefault(historyPathKey, filepath.Join(configDir, historyConfigDir, historyConfigFile))
	cfg.SetDefault(historyLimitKey, DefaultHistoryLimit)

	historyPath := cfg.GetString(historyPathKey)
	if historyPath == "" {
		return nil, errors.New("history path is empty")
	}
	historyPath, err = normalizeHistoryPath(historyPath)
	if err != nil {
		return nil, err
	}

	limit := cfg.GetInt(historyLimitKey)
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	return &Repository{
		historyPath: historyPath,
		limit:       limit,
		clock:       clock,
		mu:          lockForPath(historyPath),
	}, nil
}

func (r *Repository) Path() string {
	return r.historyPath
}

// Remember moves address to the front of the history, bumping its use count,
// and drops the oldest entries beyond the configured limit.
func (r *Repository) Remember(ctx context.Context, address string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	address, err := domain.ParseAddress(address)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	entry := endpointSchema{Address: address}
	kept := make([]endpointSchema, 0, len(file.Endpoints)+1)
	for _, existing := range file.Endpoints {
		if existing.Address == address {
			entry = existing
			continue
		}
		kept = append(kept, existing)
	}
	entry.Uses++
	entry.LastUsedAt = formatTime(r.clock.Now())

	file.Endpoints = append([]endpointSchema{entry}, kept...)
	if len(file.Endpoints) > r.limit {
		file.Endpoints = file.Endpoints[:r.limit]
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) List(ctx context.Context) ([]domain.Endpoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	endpoints := make([]domain.Endpoint, 0, len(file.Endpoints))
	for _, entry := range file.Endpoints {
		endpoints = append(endpoints, fromSchema(entry))
	}
	sort.SliceStable(endpoints, func(i, j int) bool {
		return endpoints[i].LastUsedAt.After(endpoints[j].LastUsedAt)
	})
	if len(endpoints) > r.limit {
		endpoints = endpoints[:r.limit]
	}

	return endpoints, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.historyPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read history file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode history file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeHistoryPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve history path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.historyPath), historyDirMode); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode history file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.historyPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp history file: %w", err)
	}

	if err := tempFile.Chmod(historyFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp history file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp history file: %w", err)
	}

	if err := os.Rename(tempName, r.historyPath); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}

	cleanup = false
	return nil
}

func fromSchema(entry endpointSchema) domain.Endpoint {
	return domain.Endpoint{
		Address:    entry.Address,
		LastUsedAt: parseTime(entry.LastUsedAt),
		Uses:       entry.Uses,
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339Nano)
}
