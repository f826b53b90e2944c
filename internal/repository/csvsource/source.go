package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/transit-density/internal/domain"
	"github.com/transit-density/internal/domain/repository"
	"go.uber.org/zap"
)

// ctxCheckEvery - как часто проверять отмену контекста при чтении больших файлов
const ctxCheckEvery = 4096

type source struct {
	path   string
	logger *zap.Logger
}

// NewSource создает источник записей из CSV-файла с заголовком
func NewSource(path string, logger *zap.Logger) repository.RecordSource {
	return &source{path: path, logger: logger}
}

func (s *source) Name() string {
	return "csv:" + s.path
}

func (s *source) Load(ctx context.Context) ([]domain.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	records, skipped, err := Read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	s.logger.Info("CSV loaded",
		zap.String("path", s.path),
		zap.Int("records", len(records)),
		zap.Int("skipped_lines", skipped))

	return records, nil
}

// Read разбирает CSV с заголовком. Пустой файл и файл только с заголовком дают ноль записей.
// Строки с синтаксическими ошибками пропускаются и учитываются в skipped.
func Read(ctx context.Context, r io.Reader) (records []domain.Record, skipped int, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = false

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []domain.Record{}, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}

	records = make([]domain.Record, 0, 1024)
	for line := 0; ; line++ {
		if line%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, skipped, err
			}
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++
				continue
			}
			return nil, skipped, err
		}

		records = append(records, domain.NewRecord(header, row))
	}

	return records, skipped, nil
}
